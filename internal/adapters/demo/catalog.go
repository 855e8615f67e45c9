package demo

import "github.com/alejandrodnm/nomnom/internal/domain"

// marketTemplate es la base de un mercado sintético; el generador perturba
// precios y volúmenes a partir de estos valores.
type marketTemplate struct {
	question  string
	slug      string
	category  string
	yesPrice  float64
	volume24h float64
	total     float64
	liquidity float64
	days      int
}

var marketTemplates = []marketTemplate{
	{"Will the Federal Reserve cut interest rates in Q1 2026?", "fed-rate-cut-q1-2026", "Economics", 0.72, 847_000, 12_500_000, 1_200_000, 45},
	{"Will Bitcoin reach $150,000 by March 2026?", "bitcoin-150k-march-2026", "Crypto", 0.34, 1_250_000, 28_000_000, 3_500_000, 60},
	{"Will NVIDIA stock close above $200 by end of January 2026?", "nvidia-above-200-january", "Stocks", 0.58, 523_000, 8_700_000, 890_000, 23},
	{"Will there be a new COVID variant of concern declared in 2026?", "covid-variant-of-concern-2026", "Science", 0.23, 156_000, 4_200_000, 450_000, 357},
	{"Will TikTok be banned in the US by July 2026?", "tiktok-ban-july-2026", "Politics", 0.41, 892_000, 15_600_000, 1_800_000, 180},
	{"Will Apple announce AR glasses at WWDC 2026?", "apple-ar-glasses-wwdc-2026", "Tech", 0.67, 234_000, 5_100_000, 620_000, 150},
	{"Will SpaceX complete a successful Starship orbital flight in Q1 2026?", "starship-orbital-q1-2026", "Space", 0.81, 445_000, 9_800_000, 1_100_000, 82},
	{"Will the SEC approve a Solana ETF in 2026?", "sec-solana-etf-2026", "Crypto", 0.45, 678_000, 11_200_000, 1_400_000, 340},
	{"Will unemployment rate exceed 5% by mid-2026?", "unemployment-above-5-mid-2026", "Economics", 0.28, 312_000, 6_700_000, 780_000, 180},
	{"Will GPT-5 be released by OpenAI in H1 2026?", "gpt5-release-h1-2026", "AI", 0.53, 567_000, 13_400_000, 1_650_000, 175},
}

// tradeTemplate es una operación declarada con fechas relativas a "ahora".
type tradeTemplate struct {
	politician string
	party      string
	chamber    domain.Chamber
	state      string
	ticker     string
	company    string
	tradeType  domain.TradeType
	amountLow  float64
	amountHigh float64
	tradeAgo   int // días antes de ahora
	delay      int // días entre operación y disclosure
}

var tradeTemplates = []tradeTemplate{
	{"Nancy Pelosi", "D", domain.ChamberHouse, "CA", "NVDA", "NVIDIA Corporation", domain.TradeBuy, 500_001, 1_000_000, 5, 3},
	{"Tommy Tuberville", "R", domain.ChamberSenate, "AL", "LMT", "Lockheed Martin", domain.TradeBuy, 100_001, 250_000, 8, 5},
	{"Dan Crenshaw", "R", domain.ChamberHouse, "TX", "XOM", "Exxon Mobil Corporation", domain.TradeBuy, 50_001, 100_000, 12, 5},
	{"Mark Kelly", "D", domain.ChamberSenate, "AZ", "BA", "Boeing Company", domain.TradeSell, 250_001, 500_000, 3, 2},
	{"Josh Gottheimer", "D", domain.ChamberHouse, "NJ", "AAPL", "Apple Inc.", domain.TradeBuy, 15_001, 50_000, 15, 5},
	{"Michael McCaul", "R", domain.ChamberHouse, "TX", "RTX", "RTX Corporation", domain.TradeBuy, 100_001, 250_000, 7, 3},
	{"Ro Khanna", "D", domain.ChamberHouse, "CA", "GOOGL", "Alphabet Inc.", domain.TradeSell, 50_001, 100_000, 20, 5},
	{"Marsha Blackburn", "R", domain.ChamberSenate, "TN", "META", "Meta Platforms Inc.", domain.TradeBuy, 15_001, 50_000, 10, 4},
	{"John Hickenlooper", "D", domain.ChamberSenate, "CO", "PFIX", "Simplify Interest Rate Hedge ETF", domain.TradeBuy, 100_001, 250_000, 4, 2},
	{"French Hill", "R", domain.ChamberHouse, "AR", "COIN", "Coinbase Global Inc. (crypto exchange)", domain.TradeBuy, 50_001, 100_000, 6, 4},
}
