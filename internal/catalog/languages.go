package catalog

import "strings"

// builtin follows the language list of the public web translate endpoint.
var builtin = map[string]Language{
	"af":       {Name: "Afrikaans", Country: "za"},
	"sq":       {Name: "Albanian", Country: "al"},
	"am":       {Name: "Amharic", Country: "et"},
	"ar":       {Name: "Arabic", Country: "sa"},
	"hy":       {Name: "Armenian", Country: "am"},
	"as":       {Name: "Assamese", Country: "in"},
	"ay":       {Name: "Aymara", Country: "bo"},
	"az":       {Name: "Azerbaijani", Country: "az"},
	"bm":       {Name: "Bambara", Country: "ml"},
	"eu":       {Name: "Basque", Country: "es"},
	"be":       {Name: "Belarusian", Country: "by"},
	"bn":       {Name: "Bengali", Country: "bd"},
	"bho":      {Name: "Bhojpuri", Country: "in"},
	"bs":       {Name: "Bosnian", Country: "ba"},
	"bg":       {Name: "Bulgarian", Country: "bg"},
	"ca":       {Name: "Catalan", Country: "es"},
	"ceb":      {Name: "Cebuano", Country: "ph"},
	"ny":       {Name: "Chichewa", Country: "mw"},
	"zh":       {Name: "Chinese", Country: "cn"},
	"zh-CN":    {Name: "Chinese (Simplified)", Country: "cn"},
	"zh-TW":    {Name: "Chinese (Traditional)", Country: "tw"},
	"co":       {Name: "Corsican", Country: "fr"},
	"hr":       {Name: "Croatian", Country: "hr"},
	"cs":       {Name: "Czech", Country: "cz"},
	"da":       {Name: "Danish", Country: "dk"},
	"dv":       {Name: "Dhivehi", Country: "mv"},
	"doi":      {Name: "Dogri", Country: "in"},
	"nl":       {Name: "Dutch", Country: "nl"},
	"en":       {Name: "English", Country: "gb"},
	"eo":       {Name: "Esperanto", Country: ""},
	"et":       {Name: "Estonian", Country: "ee"},
	"ee":       {Name: "Ewe", Country: "gh"},
	"tl":       {Name: "Filipino", Country: "ph"},
	"fi":       {Name: "Finnish", Country: "fi"},
	"fr":       {Name: "French", Country: "fr"},
	"fy":       {Name: "Frisian", Country: "nl"},
	"gl":       {Name: "Galician", Country: "es"},
	"ka":       {Name: "Georgian", Country: "ge"},
	"de":       {Name: "German", Country: "de"},
	"el":       {Name: "Greek", Country: "gr"},
	"gn":       {Name: "Guarani", Country: "py"},
	"gu":       {Name: "Gujarati", Country: "in"},
	"ht":       {Name: "Haitian Creole", Country: "ht"},
	"ha":       {Name: "Hausa", Country: "ng"},
	"haw":      {Name: "Hawaiian", Country: "us"},
	"he":       {Name: "Hebrew", Country: "il"},
	"iw":       {Name: "Hebrew", Country: "il"},
	"hi":       {Name: "Hindi", Country: "in"},
	"hmn":      {Name: "Hmong", Country: "la"},
	"hu":       {Name: "Hungarian", Country: "hu"},
	"is":       {Name: "Icelandic", Country: "is"},
	"ig":       {Name: "Igbo", Country: "ng"},
	"ilo":      {Name: "Ilocano", Country: "ph"},
	"id":       {Name: "Indonesian", Country: "id"},
	"ga":       {Name: "Irish", Country: "ie"},
	"it":       {Name: "Italian", Country: "it"},
	"ja":       {Name: "Japanese", Country: "jp"},
	"jw":       {Name: "Javanese", Country: "id"},
	"kn":       {Name: "Kannada", Country: "in"},
	"kk":       {Name: "Kazakh", Country: "kz"},
	"km":       {Name: "Khmer", Country: "kh"},
	"rw":       {Name: "Kinyarwanda", Country: "rw"},
	"gom":      {Name: "Konkani", Country: "in"},
	"ko":       {Name: "Korean", Country: "kr"},
	"kri":      {Name: "Krio", Country: "sl"},
	"ku":       {Name: "Kurdish (Kurmanji)", Country: "tr"},
	"ckb":      {Name: "Kurdish (Sorani)", Country: "iq"},
	"ky":       {Name: "Kyrgyz", Country: "kg"},
	"lo":       {Name: "Lao", Country: "la"},
	"la":       {Name: "Latin", Country: "va"},
	"lv":       {Name: "Latvian", Country: "lv"},
	"ln":       {Name: "Lingala", Country: "cd"},
	"lt":       {Name: "Lithuanian", Country: "lt"},
	"lg":       {Name: "Luganda", Country: "ug"},
	"lb":       {Name: "Luxembourgish", Country: "lu"},
	"mk":       {Name: "Macedonian", Country: "mk"},
	"mai":      {Name: "Maithili", Country: "in"},
	"mg":       {Name: "Malagasy", Country: "mg"},
	"ms":       {Name: "Malay", Country: "my"},
	"ml":       {Name: "Malayalam", Country: "in"},
	"mt":       {Name: "Maltese", Country: "mt"},
	"mi":       {Name: "Maori", Country: "nz"},
	"mr":       {Name: "Marathi", Country: "in"},
	"mni-Mtei": {Name: "Meiteilon (Manipuri)", Country: "in"},
	"lus":      {Name: "Mizo", Country: "in"},
	"mn":       {Name: "Mongolian", Country: "mn"},
	"my":       {Name: "Myanmar (Burmese)", Country: "mm"},
	"ne":       {Name: "Nepali", Country: "np"},
	"no":       {Name: "Norwegian", Country: "no"},
	"or":       {Name: "Odia (Oriya)", Country: "in"},
	"om":       {Name: "Oromo", Country: "et"},
	"ps":       {Name: "Pashto", Country: "af"},
	"fa":       {Name: "Persian", Country: "ir"},
	"pl":       {Name: "Polish", Country: "pl"},
	"pt":       {Name: "Portuguese", Country: "pt"},
	"pa":       {Name: "Punjabi", Country: "in"},
	"qu":       {Name: "Quechua", Country: "pe"},
	"ro":       {Name: "Romanian", Country: "ro"},
	"ru":       {Name: "Russian", Country: "ru"},
	"sm":       {Name: "Samoan", Country: "ws"},
	"sa":       {Name: "Sanskrit", Country: "in"},
	"gd":       {Name: "Scots Gaelic", Country: "gb"},
	"nso":      {Name: "Sepedi", Country: "za"},
	"sr":       {Name: "Serbian", Country: "rs"},
	"st":       {Name: "Sesotho", Country: "ls"},
	"sn":       {Name: "Shona", Country: "zw"},
	"sd":       {Name: "Sindhi", Country: "pk"},
	"si":       {Name: "Sinhala", Country: "lk"},
	"sk":       {Name: "Slovak", Country: "sk"},
	"sl":       {Name: "Slovenian", Country: "si"},
	"so":       {Name: "Somali", Country: "so"},
	"es":       {Name: "Spanish", Country: "es"},
	"su":       {Name: "Sundanese", Country: "id"},
	"sw":       {Name: "Swahili", Country: "tz"},
	"sv":       {Name: "Swedish", Country: "se"},
	"tg":       {Name: "Tajik", Country: "tj"},
	"ta":       {Name: "Tamil", Country: "in"},
	"tt":       {Name: "Tatar", Country: "ru"},
	"te":       {Name: "Telugu", Country: "in"},
	"th":       {Name: "Thai", Country: "th"},
	"ti":       {Name: "Tigrinya", Country: "er"},
	"ts":       {Name: "Tsonga", Country: "za"},
	"tr":       {Name: "Turkish", Country: "tr"},
	"tk":       {Name: "Turkmen", Country: "tm"},
	"ak":       {Name: "Twi", Country: "gh"},
	"uk":       {Name: "Ukrainian", Country: "ua"},
	"ur":       {Name: "Urdu", Country: "pk"},
	"ug":       {Name: "Uyghur", Country: "cn"},
	"uz":       {Name: "Uzbek", Country: "uz"},
	"vi":       {Name: "Vietnamese", Country: "vn"},
	"cy":       {Name: "Welsh", Country: "gb"},
	"xh":       {Name: "Xhosa", Country: "za"},
	"yi":       {Name: "Yiddish", Country: "il"},
	"yo":       {Name: "Yoruba", Country: "ng"},
	"zu":       {Name: "Zulu", Country: "za"},
}

// ISO 3166-1 alpha-2 codes.
var countries = func() map[string]struct{} {
	codes := strings.Fields(`
		AD AE AF AG AI AL AM AO AQ AR AS AT AU AW AX AZ BA BB BD BE
		BF BG BH BI BJ BL BM BN BO BQ BR BS BT BV BW BY BZ CA CC CD
		CF CG CH CI CK CL CM CN CO CR CU CV CW CX CY CZ DE DJ DK DM
		DO DZ EC EE EG EH ER ES ET FI FJ FK FM FO FR GA GB GD GE GF
		GG GH GI GL GM GN GP GQ GR GS GT GU GW GY HK HM HN HR HT HU
		ID IE IL IM IN IO IQ IR IS IT JE JM JO JP KE KG KH KI KM KN
		KP KR KW KY KZ LA LB LC LI LK LR LS LT LU LV LY MA MC MD ME
		MF MG MH MK ML MM MN MO MP MQ MR MS MT MU MV MW MX MY MZ NA
		NC NE NF NG NI NL NO NP NR NU NZ OM PA PE PF PG PH PK PL PM
		PN PR PS PT PW PY QA RE RO RS RU RW SA SB SC SD SE SG SH SI
		SJ SK SL SM SN SO SR SS ST SV SX SY SZ TC TD TF TG TH TJ TK
		TL TM TN TO TR TT TV TW TZ UA UG UM US UY UZ VA VC VE VG VI
		VN VU WF WS YE YT ZA ZM ZW
	`)
	m := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		m[code] = struct{}{}
	}
	return m
}()
