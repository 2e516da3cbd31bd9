package knowledge

// Built-in triggers. Order matters: it is the substring-match precedence.
// No trigger here is a substring of another; TestDefaultsHaveNoOverlaps guards that.
var defaultEntries = []Entry{
	{
		Trigger: "what is a stock",
		Answer: "A stock is a share of ownership in a company. When you buy stock you own a small " +
			"piece of that business and may benefit from its growth through a rising share price " +
			"and dividends. Stock prices move with company results and market sentiment.",
	},
	{
		Trigger: "what is a bond",
		Answer: "A bond is a loan you make to a government or company. The issuer pays you interest " +
			"at a fixed rate and returns the principal when the bond matures. Bonds are usually " +
			"less volatile than stocks but offer lower long-term returns.",
	},
	{
		Trigger: "what is an etf",
		Answer: "An ETF (exchange-traded fund) is a basket of securities that trades on an exchange " +
			"like a single stock. ETFs give you instant diversification, often at a low cost, " +
			"and many simply track an index such as the S&P 500.",
	},
	{
		Trigger: "what is diversification",
		Answer: "Diversification means spreading your money across different assets, sectors and " +
			"regions so a loss in one holding does not sink the whole portfolio.",
	},
	{
		Trigger: "what is a dividend",
		Answer: "A dividend is a portion of a company's profit paid out to shareholders, usually " +
			"every quarter. Dividend yield is the annual dividend divided by the share price.",
	},
	{
		Trigger: "how to start investing",
		Answer: "Start by building an emergency fund and paying off high-interest debt. Then open a " +
			"brokerage or retirement account, decide how much risk you can take, and consider " +
			"low-cost index funds. Invest regularly and think in years, not days.",
	},
	{
		Trigger: "help",
		Answer: "I can explain basic investing ideas and look up live prices. Try:\n" +
			"- \"what is a stock\", \"what is a bond\", \"what is an etf\"\n" +
			"- \"what is diversification\", \"what is a dividend\"\n" +
			"- \"how to start investing\"\n" +
			"- \"stock AAPL\" for a quote and a 12-month chart",
	},
}

// Default returns the built-in knowledge table
func Default() *Base {
	return New(defaultEntries)
}
