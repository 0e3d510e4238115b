package domain

// DefaultGifts returns the demo set the local backend is seeded with on first
// use. Remote backends are never seeded.
func DefaultGifts() []*Gift {
	return []*Gift{
		{
			ID:       "duplo-zviratka",
			Title:    "LEGO® DUPLO Zvířátka",
			Link:     "https://www.lego.com/",
			Image:    "https://images.unsplash.com/photo-1601758064138-4c3d2a9d6d3e?q=80&w=1200",
			PriceCZK: price(899),
			Note:     "Ideálně se zvířátky na farmě. Vhodné od 18 měsíců.",
		},
		{
			ID:       "knizka-kontrasty",
			Title:    "Kontrastní leporelo (černá–bílá)",
			Link:     "https://www.knihydobrovsky.cz/",
			Image:    "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?q=80&w=1200",
			PriceCZK: price(249),
			Note:     "Tvrdé stránky, odolné vůči dětským ručičkám.",
		},
		{
			ID:       "zimni-overal",
			Title:    "Zimní overal (vel. 86)",
			Link:     "https://www.zoot.cz/",
			Image:    "https://images.unsplash.com/photo-1543466835-00a7907e9de1?q=80&w=1200",
			PriceCZK: price(1190),
			Note:     "Neutrální barva, snadné oblékání.",
		},
	}
}

func price(v float64) *float64 { return &v }
