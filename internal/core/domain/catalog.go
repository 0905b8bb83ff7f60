package domain

// DefaultCatalog returns the built-in set of tracked topics.
// A fresh slice is returned on every call so callers cannot mutate a shared value.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:    "paraguay-residency",
			Name:  "Paraguay Residency",
			Icon:  "🇵🇾",
			Color: "red",
			Keywords: []string{
				"paraguay", "residency", "residencia", "cedula", "migraciones",
				"asuncion", "paraguayan", "permanent resident", "temporary resident",
				"visa paraguay", "ruc", "paraguajsk",
			},
		},
		{
			ID:    "us-llc-taxes",
			Name:  "US LLC & Taxes",
			Icon:  "🏢",
			Color: "blue",
			Keywords: []string{
				"llc", "us llc", "wyoming", "delaware", "new mexico", "irs",
				"ein", "itin", "w-8ben", "tax", "taxes", "incorporation",
				"registered agent", "5472", "fbar", "fatca", "cfc", "gilti",
				"pass-through", "disregarded entity", "single member",
			},
		},
		{
			ID:    "south-america-living",
			Name:  "Living in South America",
			Icon:  "🌎",
			Color: "green",
			Keywords: []string{
				"argentina", "uruguay", "montevideo", "buenos aires", "mendoza",
				"cordoba", "chile", "santiago", "brazil", "colombia", "medellin",
				"cost of living", "expat", "nomad", "coliving", "coworking",
				"south america", "latin america", "latam",
			},
		},
		{
			ID:    "ai-tools",
			Name:  "AI Tools & Tech",
			Icon:  "🤖",
			Color: "purple",
			Keywords: []string{
				"chatgpt", "claude", "gpt-4", "gpt4", "openai", "anthropic",
				"midjourney", "stable diffusion", "dall-e", "ai tool", "llm",
				"machine learning", "automation", "cursor", "copilot", "gemini",
				"perplexity", "ai agent", "langchain", "vector", "embedding",
				"rag", "fine-tune", "prompt",
			},
		},
		{
			ID:    "nomad-tools",
			Name:  "Digital Nomad Tools",
			Icon:  "🧳",
			Color: "orange",
			Keywords: []string{
				"nomad", "remote work", "coworking", "coliving", "wise", "transferwise",
				"revolut", "mercury", "relay", "stripe atlas", "firstbase",
				"travel insurance", "safetywing", "world nomads", "vpn", "esim",
				"airalo", "starlink", "notion", "slack", "zoom", "loom",
				"banking", "international", "freelance", "contractor",
			},
		},
	}
}
