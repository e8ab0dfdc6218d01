package housing

// Defaults maps columns to the value that replaces a missing cell. In the
// Ames data dictionary a missing value in these columns means the feature is
// absent from the property (no alley, no basement, no garage), so categorical
// columns fill with the sentinel "None" and their numeric companions with 0.
var Defaults = map[string]string{
	"Alley":        "None",
	"MasVnrType":   "None",
	"BsmtQual":     "None",
	"BsmtCond":     "None",
	"BsmtExposure": "None",
	"BsmtFinType1": "None",
	"BsmtFinType2": "None",
	"FireplaceQu":  "None",
	"GarageType":   "None",
	"GarageFinish": "None",
	"GarageQual":   "None",
	"GarageCond":   "None",
	"PoolQC":       "None",
	"Fence":        "None",
	"MiscFeature":  "None",

	"LotFrontage":  "0",
	"MasVnrArea":   "0",
	"BsmtFinSF1":   "0",
	"BsmtFinSF2":   "0",
	"BsmtUnfSF":    "0",
	"TotalBsmtSF":  "0",
	"BsmtFullBath": "0",
	"BsmtHalfBath": "0",
	"GarageYrBlt":  "0",
	"GarageCars":   "0",
	"GarageArea":   "0",
}

// qualityScale is the shared ordinal coding for quality/condition columns.
var qualityScale = map[string]string{
	"None": "0",
	"Po":   "1",
	"Fa":   "2",
	"TA":   "3",
	"Gd":   "4",
	"Ex":   "5",
}

// bsmtFinScale is the ordinal coding for basement finish types.
var bsmtFinScale = map[string]string{
	"None": "0",
	"Unf":  "1",
	"LwQ":  "2",
	"Rec":  "3",
	"BLQ":  "4",
	"ALQ":  "5",
	"GLQ":  "6",
}

// Recodings maps columns to fixed value-remapping tables. Values absent from
// a column's table pass through unchanged, which makes recoding idempotent.
// Most tables turn ordinal category codes into integer strings; MSZoning only
// normalizes the label spelling.
var Recodings = map[string]map[string]string{
	"ExterQual":   qualityScale,
	"ExterCond":   qualityScale,
	"BsmtQual":    qualityScale,
	"BsmtCond":    qualityScale,
	"HeatingQC":   qualityScale,
	"KitchenQual": qualityScale,
	"FireplaceQu": qualityScale,
	"GarageQual":  qualityScale,
	"GarageCond":  qualityScale,
	"PoolQC":      qualityScale,

	"BsmtFinType1": bsmtFinScale,
	"BsmtFinType2": bsmtFinScale,

	"BsmtExposure": {
		"None": "0",
		"No":   "1",
		"Mn":   "2",
		"Av":   "3",
		"Gd":   "4",
	},

	"Alley": {
		"None": "0",
		"Grvl": "1",
		"Pave": "2",
	},

	"GarageFinish": {
		"None": "0",
		"Unf":  "1",
		"RFn":  "2",
		"Fin":  "3",
	},

	"Fence": {
		"None":  "0",
		"MnWw":  "1",
		"GdWo":  "2",
		"MnPrv": "3",
		"GdPrv": "4",
	},

	"CentralAir": {
		"N": "0",
		"Y": "1",
	},

	"PavedDrive": {
		"N": "0",
		"P": "1",
		"Y": "2",
	},

	"MSZoning": {
		"A (agr)": "A",
		"C (all)": "C",
		"I (all)": "I",
	},
}
