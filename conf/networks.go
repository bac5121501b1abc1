package conf

type network struct {
	Name     string
	Url      string
	Explorer string
}

var networks = map[int64]*network{
	1337: {
		Name:     "localhost",
		Url:      "http://127.0.0.1:8545",
		Explorer: "http://127.0.0.1:4000",
	},
	360: {
		Name:     "shape",
		Url:      "https://mainnet.shape.network",
		Explorer: "https://shapescan.xyz",
	},
	11011: {
		Name:     "shape sepolia",
		Url:      "https://sepolia.shape.network",
		Explorer: "https://sepolia.shapescan.xyz",
	},
	8453: {
		Name:     "base",
		Url:      "https://mainnet.base.org",
		Explorer: "https://basescan.org",
	},
	84532: {
		Name:     "base sepolia",
		Url:      "https://sepolia.base.org",
		Explorer: "https://sepolia.basescan.org",
	},
}
