package categorize

// CatchAll is the category assigned when no rule keyword matches.
const CatchAll = "other"

// Rule pairs a category label with the keyword substrings that select it.
// Rules are evaluated in declaration order and the first match wins, so the
// order of this table is part of the contract.
type Rule struct {
	Label    string
	Keywords []string
}

// DefaultRules returns the built-in category table.
func DefaultRules() []Rule {
	return []Rule{
		{Label: "food", Keywords: []string{
			"swiggy", "zomato", "restaurant", "cafe", "food", "pizza", "burger",
			"kitchen", "dhaba", "biryani", "bakery", "sweet", "juice", "tea",
			"coffee", "starbucks", "mcdonald", "kfc", "domino", "subway", "dining",
			"bundl", "mc donalds",
		}},
		{Label: "shopping", Keywords: []string{
			"amazon", "flipkart", "myntra", "ajio", "mall", "retail", "store",
			"mart", "bazaar", "shoppers", "lifestyle", "westside", "pantaloons",
			"reliance trends", "max fashion", "h&m", "zara", "decathlon",
		}},
		{Label: "travel", Keywords: []string{
			"uber", "ola", "rapido", "irctc", "railway", "airline", "makemytrip",
			"hotel", "oyo", "goibibo", "yatra", "cleartrip", "indigo", "spicejet",
			"air india", "vistara", "booking.com", "airbnb", "cab", "taxi",
		}},
		{Label: "utilities", Keywords: []string{
			"electricity", "airtel", "jio", "vodafone", "bsnl", "broadband",
			"gas", "water", "bill", "recharge", "postpaid", "prepaid", "dth",
			"tata sky", "dish tv", "internet", "atria convergence",
		}},
		{Label: "entertainment", Keywords: []string{
			"netflix", "hotstar", "spotify", "prime video", "movie", "pvr", "inox",
			"bookmyshow", "gaming", "playstation", "xbox", "steam", "youtube",
			"disney", "zee5", "sonyliv", "jiocinema", "cinema", "multiplex",
		}},
		{Label: "healthcare", Keywords: []string{
			"hospital", "pharmacy", "medical", "apollo", "medplus", "clinic",
			"diagnostic", "lab", "doctor", "medicine", "pharma", "health",
			"netmeds", "1mg", "practo", "dental", "optical", "rxdx",
		}},
		{Label: "groceries", Keywords: []string{
			"bigbasket", "zepto", "blinkit", "dmart", "reliance fresh", "supermarket",
			"grofers", "jiomart", "spencer", "more supermarket", "nature basket",
			"organic", "vegetables", "fruits", "daily needs", "instamart", "bbnow",
			"innovative retail", "bb daily",
		}},
		{Label: "fuel", Keywords: []string{
			"petrol", "diesel", "hp ", "indian oil", "bharat petroleum", "shell",
			"fuel", "iocl", "bpcl", "hpcl", "filling station", "gas station",
			"mohan n p enter",
		}},
		{Label: "emi", Keywords: []string{
			"emi", "loan", "finserv", "bajaj", "hdfc ltd", "icici bank emi",
			"credit card emi", "no cost emi",
		}},
		{Label: "insurance", Keywords: []string{
			"generali central", "niva bupa", "icici lombard",
		}},
		{Label: "automobiles", Keywords: []string{
			"epitome automobiles", "k h t agencies",
		}},
		{Label: "jewellery", Keywords: []string{
			"malabar gold", "bluestone jewellery", "tanishq", "neelkanth jewel",
		}},
		{Label: "electronics", Keywords: []string{
			"rel retail ltd digital", "adishwar india",
		}},
	}
}
