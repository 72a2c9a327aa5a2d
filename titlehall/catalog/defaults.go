package catalog

// Default returns the built-in catalog: the thirteen shop titles and
// the twenty-six launch objectives.
func Default() *Catalog {
	c, err := New(defaultUnlocks(), defaultObjectives())
	if err != nil {
		// The builtin tables are fixed at compile time; failing
		// validation here is a programming error.
		panic(err)
	}
	return c
}

func defaultUnlocks() []Unlock {
	return []Unlock{
		{ID: "newbie", DisplayName: "[NEWBIE]", Price: 0, Rarity: RarityCommon, Description: "Starting title for all players"},
		{ID: "vip", DisplayName: "[VIP]", Price: 500, Rarity: RarityRare, Description: "Very Important Player status"},
		{ID: "admin", DisplayName: "[ADMIN]", Price: 2000, Rarity: RarityEpic, Description: "Administrator authority"},
		{ID: "sniper", DisplayName: "[SNIPER]", Price: 800, Rarity: RarityRare, Description: "Precision and accuracy"},
		{ID: "legend", DisplayName: "[LEGEND]", Price: 3000, Rarity: RarityEpic, Description: "Legendary warrior status"},
		{ID: "king", DisplayName: "[KING]", Price: 10000, Rarity: RarityLegendary, Description: "Ultimate royal power"},
		{ID: "task_master", DisplayName: "[TASK-MASTER]", Price: 1500, Rarity: RarityEpic, Description: "Master of all quests"},
		{ID: "cheater", DisplayName: "[CHEATER]", Price: 5000, Rarity: RarityLegendary, Description: "Breaking all the rules"},
		{ID: "creator", DisplayName: "[CREATOR]", Price: 4000, Rarity: RarityEpic, Description: "Content creator elite"},
		{ID: "collab", DisplayName: "[COLLAB]", Price: 1200, Rarity: RarityRare, Description: "Collaboration specialist"},
		{ID: "saf_admin", DisplayName: "[SAF ADMIN]", Price: 7500, Rarity: RarityLegendary, Description: "SAF Administration"},
		{ID: "sat_admin", DisplayName: "[SAT ADMIN]", Price: 8000, Rarity: RarityLegendary, Description: "SAT Administration"},
		{ID: "troller", DisplayName: "[TROLLER]", Price: 2500, Rarity: RarityEpic, Description: "Master of trolling"},
	}
}

func defaultObjectives() []ObjectiveTemplate {
	return []ObjectiveTemplate{
		// Time on site
		{ID: "time_first_steps", DisplayName: "First Steps", Description: "Spend 30 seconds on the site", Kind: KindElapsedTime, Target: 30, Reward: 25},
		{ID: "time_newcomer", DisplayName: "Newcomer", Description: "Spend 1 minute on the site", Kind: KindElapsedTime, Target: 60, Reward: 50},
		{ID: "time_explorer", DisplayName: "Explorer", Description: "Spend 2 minutes on the site", Kind: KindElapsedTime, Target: 120, Reward: 75},
		{ID: "time_active_player", DisplayName: "Active Player", Description: "Spend 3 minutes on the site", Kind: KindElapsedTime, Target: 180, Reward: 100},
		{ID: "time_veteran", DisplayName: "Veteran", Description: "Spend 5 minutes on the site", Kind: KindElapsedTime, Target: 300, Reward: 200},
		{ID: "time_regular", DisplayName: "Regular Guest", Description: "Spend 7 minutes on the site", Kind: KindElapsedTime, Target: 420, Reward: 300},
		{ID: "time_devoted", DisplayName: "Devoted", Description: "Spend 10 minutes on the site", Kind: KindElapsedTime, Target: 600, Reward: 500},
		{ID: "time_master", DisplayName: "Time Master", Description: "Spend 15 minutes on the site", Kind: KindElapsedTime, Target: 900, Reward: 1000},
		{ID: "time_conqueror", DisplayName: "Conqueror", Description: "Spend 20 minutes on the site", Kind: KindElapsedTime, Target: 1200, Reward: 1500},
		{ID: "time_legend", DisplayName: "Legend", Description: "Spend 30 minutes on the site", Kind: KindElapsedTime, Target: 1800, Reward: 2500},
		{ID: "time_titan", DisplayName: "Titan", Description: "Spend 45 minutes on the site", Kind: KindElapsedTime, Target: 2700, Reward: 4000},
		{ID: "time_god", DisplayName: "God of Time", Description: "Spend 1 hour on the site", Kind: KindElapsedTime, Target: 3600, Reward: 6000},
		{ID: "time_champion", DisplayName: "Champion", Description: "Spend 1.5 hours on the site", Kind: KindElapsedTime, Target: 5400, Reward: 8000},
		{ID: "time_unbreakable", DisplayName: "Unbreakable", Description: "Spend 2 hours on the site", Kind: KindElapsedTime, Target: 7200, Reward: 10000},
		{ID: "time_king", DisplayName: "King of Time", Description: "Spend 3 hours on the site", Kind: KindElapsedTime, Target: 10800, Reward: 15000},

		// Chat activity
		{ID: "chat_talker", DisplayName: "Talker", Description: "Send 5 chat messages", Kind: KindMessagesSent, Target: 5, Reward: 100},
		{ID: "chat_sociable", DisplayName: "Sociable", Description: "Send 10 chat messages", Kind: KindMessagesSent, Target: 10, Reward: 200},
		{ID: "chat_chatterbox", DisplayName: "Chatterbox", Description: "Send 25 chat messages", Kind: KindMessagesSent, Target: 25, Reward: 500},
		{ID: "chat_spammer", DisplayName: "Spammer", Description: "Send 50 chat messages", Kind: KindMessagesSent, Target: 50, Reward: 1000},
		{ID: "chat_monster", DisplayName: "Chat Monster", Description: "Send 100 chat messages", Kind: KindMessagesSent, Target: 100, Reward: 2000},

		// Title collecting
		{ID: "shop_collector", DisplayName: "Collector", Description: "Own 3 titles", Kind: KindUnlocksPurchased, Target: 3, Reward: 500},
		{ID: "shop_gatherer", DisplayName: "Gatherer", Description: "Own 5 titles", Kind: KindUnlocksPurchased, Target: 5, Reward: 1000},
		{ID: "shop_hunter", DisplayName: "Title Hunter", Description: "Own 8 titles", Kind: KindUnlocksPurchased, Target: 8, Reward: 2000},
		{ID: "shop_completionist", DisplayName: "Owner of Everything", Description: "Own every title", Kind: KindUnlocksPurchased, Target: 13, Reward: 5000},

		// Wealth
		{ID: "wealth_rich", DisplayName: "Rich", Description: "Accumulate 5000 TitleCoins", Kind: KindBalanceReached, Target: 5000, Reward: 500},
		{ID: "wealth_millionaire", DisplayName: "Millionaire", Description: "Accumulate 10000 TitleCoins", Kind: KindBalanceReached, Target: 10000, Reward: 1000},
	}
}
