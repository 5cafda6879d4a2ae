package moneymarket

// Concept is one entry of the fixed learning catalogue.
type Concept struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Duration int    `json:"duration"`
}

// concepts is the built-in money-market curriculum, worked through in
// order, one concept per day.
var concepts = []Concept{
	{1, "What is the Stock Market?", "Basics", 20},
	{2, "Understanding Bull vs Bear Markets", "Basics", 20},
	{3, "What are Stocks and Shares?", "Basics", 20},
	{4, "Market Indices (Nifty, Sensex)", "Basics", 20},
	{5, "How Stock Exchanges Work", "Basics", 20},
	{6, "Types of Orders (Market, Limit, Stop)", "Trading", 20},
	{7, "Bid-Ask Spread Explained", "Trading", 20},
	{8, "Understanding Volume", "Trading", 20},
	{9, "Candlestick Chart Basics", "Technical", 20},
	{10, "Support and Resistance Levels", "Technical", 20},
	{11, "Moving Averages (SMA, EMA)", "Technical", 20},
	{12, "RSI Indicator", "Technical", 20},
	{13, "MACD Indicator", "Technical", 20},
	{14, "Fundamental Analysis Basics", "Fundamental", 20},
	{15, "P/E Ratio Explained", "Fundamental", 20},
	{16, "Understanding EPS", "Fundamental", 20},
	{17, "Dividend Investing Basics", "Fundamental", 20},
	{18, "Market Capitalization", "Fundamental", 20},
	{19, "Risk Management Basics", "Risk", 20},
	{20, "Position Sizing", "Risk", 20},
	{21, "Stop Loss Strategies", "Risk", 20},
	{22, "Portfolio Diversification", "Risk", 20},
	{23, "Mutual Funds Basics", "Products", 20},
	{24, "ETFs Explained", "Products", 20},
	{25, "Bonds and Fixed Income", "Products", 20},
	{26, "Options Trading Basics", "Derivatives", 20},
	{27, "Futures Contracts", "Derivatives", 20},
	{28, "IPO Process", "Corporate", 20},
	{29, "Annual Reports Reading", "Corporate", 20},
	{30, "Market Psychology", "Psychology", 20},
}

// Concepts returns the full catalogue.
func Concepts() []Concept {
	out := make([]Concept, len(concepts))
	copy(out, concepts)
	return out
}

func conceptByName(name string) *Concept {
	for i := range concepts {
		if concepts[i].Name == name {
			return &concepts[i]
		}
	}
	return nil
}
