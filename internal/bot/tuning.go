package bot

import botinternal "hearts/internal/bot/internal"

// defaultTuning drives the easy and medium tiers.
var defaultTuning = botinternal.Weights{
	QueenDanger:      50.0,
	HighSpadeDanger:  18.0,
	HeartBase:        6.0,
	RankWeight:       1.0,
	VoidBonus:        8.0,
	MoonThreatPoints: 10,
	MoonHandStrength: 10.5,
}

// hardTuning reacts to moon threats earlier and demands a stronger hand
// before attempting one.
var hardTuning = botinternal.Weights{
	QueenDanger:      50.0,
	HighSpadeDanger:  20.0,
	HeartBase:        6.0,
	RankWeight:       1.0,
	VoidBonus:        10.0,
	MoonThreatPoints: 8,
	MoonHandStrength: 10.0,
}
