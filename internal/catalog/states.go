package catalog

var stateNames = map[string]string{
	"AL": "阿拉巴马", "AK": "阿拉斯加", "AZ": "亚利桑那", "AR": "阿肯色", "CA": "加利福尼亚",
	"CO": "科罗拉多", "CT": "康涅狄格", "DE": "特拉华", "FL": "佛罗里达", "GA": "佐治亚",
	"HI": "夏威夷", "ID": "爱达荷", "IL": "伊利诺伊", "IN": "印第安纳", "IA": "爱荷华",
	"KS": "堪萨斯", "KY": "肯塔基", "LA": "路易斯安那", "ME": "缅因", "MD": "马里兰",
	"MA": "马萨诸塞", "MI": "密歇根", "MN": "明尼苏达", "MS": "密西西比", "MO": "密苏里",
	"MT": "蒙大拿", "NE": "内布拉斯加", "NV": "内华达", "NH": "新罕布什尔", "NJ": "新泽西",
	"NM": "新墨西哥", "NY": "纽约", "NC": "北卡罗来纳", "ND": "北达科他", "OH": "俄亥俄",
	"OK": "俄克拉荷马", "OR": "俄勒冈", "PA": "宾夕法尼亚", "RI": "罗德岛", "SC": "南卡罗来纳",
	"SD": "南达科他", "TN": "田纳西", "TX": "德克萨斯", "UT": "犹他", "VT": "佛蒙特",
	"VA": "弗吉尼亚", "WA": "华盛顿", "WV": "西弗吉尼亚", "WI": "威斯康星", "WY": "怀俄明",
	"DC": "华盛顿特区",
}

// StateName returns the Chinese name of a US state code, or "" if unknown
func StateName(code string) string {
	return stateNames[code]
}
