package rules

import "github.com/statiolake/rich-rich-daifugo-sub002/internal/game"

// RuleConfig is the immutable per-game record of variant toggles. It is
// a declarative capability table consulted by the validator and the
// effect analyzer; adding a rule means adding one field and one
// predicate, never restructuring control flow. Absent toggles are
// disabled.
type RuleConfig struct {
	// Combination families beyond the default shapes.
	Stair         bool `mapstructure:"stair"`
	SkipStair     bool `mapstructure:"skip_stair"`
	DoubleStair   bool `mapstructure:"double_stair"`
	Tunnel        bool `mapstructure:"tunnel"`
	SpadeStair    bool `mapstructure:"spade_stair"`
	Taepodong     bool `mapstructure:"taepodong"`
	CrossDressing bool `mapstructure:"cross_dressing"`
	Goroawase     bool `mapstructure:"goroawase"`

	// Revolution-class triggers.
	Revolution          bool `mapstructure:"revolution"`
	GreatRevolution     bool `mapstructure:"great_revolution"`
	StairRevolution     bool `mapstructure:"stair_revolution"`
	NanasanRevolution   bool `mapstructure:"nanasan_revolution"`
	FusionRevolution    bool `mapstructure:"fusion_revolution"`
	ReligiousRevolution bool `mapstructure:"religious_revolution"`
	Omen                bool `mapstructure:"omen"`

	// Temporary inversions.
	ElevenBack bool `mapstructure:"eleven_back"`
	TwoBack    bool `mapstructure:"two_back"`

	// Strength overrides.
	TenFree          bool      `mapstructure:"ten_free"`
	Arthur           bool      `mapstructure:"arthur"`
	Sandstorm        bool      `mapstructure:"sandstorm"`
	SpadeThreeReturn bool      `mapstructure:"spade_three_return"`
	DoubleKing       bool      `mapstructure:"double_king"`
	RedSevenPower    bool      `mapstructure:"red_seven_power"`
	BlackSevenPower  bool      `mapstructure:"black_seven_power"`
	TrumpRank        game.Rank `mapstructure:"trump_rank"` // 0 = no trump
	DownNumber       bool      `mapstructure:"down_number"`

	// Locks.
	SuitLock        bool `mapstructure:"suit_lock"`
	NumberLock      bool `mapstructure:"number_lock"`
	ColorLock       bool `mapstructure:"color_lock"`
	StrictLock      bool `mapstructure:"strict_lock"`
	ParityLock      bool `mapstructure:"parity_lock"`
	DoubleDigitSeal bool `mapstructure:"double_digit_seal"`
	HotMilk         bool `mapstructure:"hot_milk"`
	PartialLock     bool `mapstructure:"partial_lock"`

	// Field and turn-order side effects.
	EightCut    bool `mapstructure:"eight_cut"`
	FiveSkip    bool `mapstructure:"five_skip"`
	NineReverse bool `mapstructure:"nine_reverse"`
	SevenGive   bool `mapstructure:"seven_give"`
	TenDiscard  bool `mapstructure:"ten_discard"`

	// Terminal-play rules.
	ForbiddenFinish      bool        `mapstructure:"forbidden_finish"`
	ForbiddenFinishRanks []game.Rank `mapstructure:"forbidden_finish_ranks"`
	AdauchiBan           bool        `mapstructure:"adauchi_ban"`
	SecurityLaw          bool        `mapstructure:"security_law"`
}

// DefaultForbiddenRanks are the ranks that may not empty a hand when
// forbidden finish is on: jack, two, eight and the joker.
func DefaultForbiddenRanks() []game.Rank {
	return []game.Rank{game.RankJack, game.RankTwo, game.Rank(8), game.RankJoker}
}

// StandardRules enables the common tournament set: stairs, quad
// revolution, eight cut, suit lock and forbidden finish.
func StandardRules() RuleConfig {
	return RuleConfig{
		Stair:                true,
		Revolution:           true,
		ElevenBack:           true,
		EightCut:             true,
		SuitLock:             true,
		ForbiddenFinish:      true,
		ForbiddenFinishRanks: DefaultForbiddenRanks(),
	}
}

// KitchenSinkRules switches on the entire catalogue, used by simulation
// and exhaustive tests.
func KitchenSinkRules() RuleConfig {
	return RuleConfig{
		Stair: true, SkipStair: true, DoubleStair: true, Tunnel: true,
		SpadeStair: true, Taepodong: true, CrossDressing: true, Goroawase: true,
		Revolution: true, GreatRevolution: true, StairRevolution: true,
		NanasanRevolution: true, FusionRevolution: true, ReligiousRevolution: false,
		Omen: true, ElevenBack: true, TwoBack: true,
		TenFree: false, Arthur: true, Sandstorm: true, SpadeThreeReturn: true,
		DoubleKing: true, RedSevenPower: true, DownNumber: true,
		SuitLock: true, NumberLock: true, ColorLock: true, StrictLock: true,
		ParityLock: true, DoubleDigitSeal: true, HotMilk: true, PartialLock: true,
		EightCut: true, FiveSkip: true, NineReverse: true, SevenGive: true,
		TenDiscard: true,
		ForbiddenFinish: true, ForbiddenFinishRanks: DefaultForbiddenRanks(),
		AdauchiBan: true, SecurityLaw: true,
	}
}

// ClassifyOptions projects the configuration onto the classifier's
// option flags.
func (rc RuleConfig) ClassifyOptions() game.ClassifyOptions {
	return game.ClassifyOptions{
		SkipStair:   rc.SkipStair,
		DoubleStair: rc.DoubleStair,
		Tunnel:      rc.Tunnel,
		SpadeStair:  rc.SpadeStair,
		Taepodong:   rc.Taepodong,
	}
}

// ForbiddenRanks returns the configured forbidden finish set, falling
// back to the default set when the list is empty.
func (rc RuleConfig) ForbiddenRanks() []game.Rank {
	if len(rc.ForbiddenFinishRanks) > 0 {
		return rc.ForbiddenFinishRanks
	}
	return DefaultForbiddenRanks()
}
