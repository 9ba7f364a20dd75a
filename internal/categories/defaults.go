package categories

// Built-in taxonomy. Labels follow the household vocabulary the parser is
// tuned for; a YAML taxonomy file can replace the whole set at startup.

var defaultExpenseOrder = []string{
	"Housing", "Transportation", "Food", "Healthcare", "Personal",
	"Debt", "Savings", "Education", "Charity", "Miscellaneous",
}

var defaultExpense = map[string][]string{
	"Housing":        {"rent", "mortgage", "property tax", "home insurance", "maintenance", "repairs", "utilities", "maid"},
	"Transportation": {"car payment", "fuel", "public transit", "maintenance", "insurance", "parking", "tolls", "auto rickshaw", "metro"},
	"Food":           {"groceries", "dining out", "takeout", "coffee", "alcohol", "snacks", "panipuris", "sabji", "dhaba", "sweets", "kirana"},
	"Healthcare":     {"insurance", "doctor", "dentist", "pharmacy", "hospital", "optical", "fitness", "ayurveda"},
	"Personal":       {"clothing", "entertainment", "hobbies", "subscriptions", "gifts", "beauty", "electronics", "movie ticket", "jewelry"},
	"Debt":           {"credit card", "student loan", "personal loan", "payday loan", "debt consolidation", "EMI"},
	"Savings":        {"emergency fund", "retirement", "investments", "education fund", "vacation fund", "FD", "RD"},
	"Education":      {"tuition", "books", "supplies", "courses", "software", "conferences", "coaching"},
	"Charity":        {"donations", "gifts", "religious", "political", "community support", "temple", "pooja"},
	"Miscellaneous":  {"pet care", "child care", "legal fees", "taxes", "fines", "unexpected", "festivals"},
}

var defaultIncomeOrder = []string{
	"Employment", "Business", "Investments", "Government", "Other",
}

var defaultIncome = map[string][]string{
	"Employment":  {"salary", "wages", "bonus", "commission", "tips", "overtime", "stipend"},
	"Business":    {"self-employment", "freelance", "consulting", "sales", "royalties", "shop income"},
	"Investments": {"dividends", "interest", "capital gains", "rental income", "retirement", "MF returns"},
	"Government":  {"social security", "unemployment", "disability", "stimulus", "tax refund", "pension"},
	"Other":       {"gifts", "inheritance", "lottery", "alimony", "crowdfunding", "reimbursement", "wedding gift"},
}

var defaultKeywords = []KeywordRule{
	{Keyword: "panipuris", Main: "Food", Sub: "panipuris"},
	{Keyword: "movie", Main: "Personal", Sub: "movie ticket"},
	{Keyword: "ticket", Main: "Personal", Sub: "movie ticket"},
	{Keyword: "sabji", Main: "Food", Sub: "sabji"},
	{Keyword: "groceries", Main: "Food", Sub: "groceries"},
	{Keyword: "clothes", Main: "Personal", Sub: "clothing"},
	{Keyword: "clothing", Main: "Personal", Sub: "clothing"},
	{Keyword: "salary", Main: "Employment", Sub: "salary"},
	{Keyword: "kirana", Main: "Food", Sub: "kirana"},
	{Keyword: "dhaba", Main: "Food", Sub: "dhaba"},
	{Keyword: "sweets", Main: "Food", Sub: "sweets"},
	{Keyword: "auto", Main: "Transportation", Sub: "auto rickshaw"},
	{Keyword: "rickshaw", Main: "Transportation", Sub: "auto rickshaw"},
	{Keyword: "emi", Main: "Debt", Sub: "EMI"},
	{Keyword: "gift", Main: "Other", Sub: "gifts"},
}

// NewDefault returns the built-in taxonomy. The defaults are known-good, so
// construction cannot fail.
func NewDefault() *Taxonomy {
	t, err := New(defaultExpense, defaultIncome, defaultExpenseOrder, defaultIncomeOrder, defaultKeywords)
	if err != nil {
		panic("categories: built-in taxonomy is invalid: " + err.Error())
	}
	return t
}
