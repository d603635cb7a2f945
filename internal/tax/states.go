package tax

// GST state codes as they appear in the first two digits of a GSTIN.
var stateNames = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"26": "Dadra and Nagar Haveli and Daman and Diu",
	"27": "Maharashtra",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
	"97": "Other Territory",
}

// stateCodes maps folded names (and common spellings) to codes.
var stateCodes = func() map[string]string {
	m := make(map[string]string, len(stateNames)+8)
	for code, name := range stateNames {
		m[foldName(name)] = code
	}
	for alias, code := range map[string]string{
		"jammu & kashmir":        "01",
		"new delhi":              "07",
		"nct of delhi":           "07",
		"orissa":                 "21",
		"pondicherry":            "34",
		"andaman & nicobar":      "35",
		"daman and diu":          "26",
		"dadra and nagar haveli": "26",
	} {
		m[alias] = code
	}
	return m
}()

// StateName returns the registered name for a GST state code.
func StateName(code string) (string, bool) {
	name, ok := stateNames[code]
	return name, ok
}
