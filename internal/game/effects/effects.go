package effects

// Effect names one trigger effect a play activates. Detection lives
// here; application (mutating locks, flags and the field) is the turn
// orchestrator's job.
type Effect string

const (
	// Revolution class: triggers that invert or re-invert the global
	// strength ordering.
	EffectRevolution          Effect = "REVOLUTION"
	EffectGreatRevolution     Effect = "GREAT_REVOLUTION"
	EffectStairRevolution     Effect = "STAIR_REVOLUTION"
	EffectNanasanRevolution   Effect = "NANASAN_REVOLUTION"
	EffectFusionRevolution    Effect = "FUSION_REVOLUTION"
	EffectReligiousRevolution Effect = "RELIGIOUS_REVOLUTION"
	EffectElevenBack          Effect = "ELEVEN_BACK"
	EffectTwoBack             Effect = "TWO_BACK"

	// Ambient state starters.
	EffectOmen    Effect = "OMEN"
	EffectTenFree Effect = "TEN_FREE"
	EffectArthur  Effect = "ARTHUR"

	// Field-clearing.
	EffectEightCut         Effect = "EIGHT_CUT"
	EffectSpadeThreeReturn Effect = "SPADE_THREE_RETURN"
	EffectTaepodong        Effect = "TAEPODONG"

	// Turn-order.
	EffectFiveSkip    Effect = "FIVE_SKIP"
	EffectNineReverse Effect = "NINE_REVERSE"

	// Forced discard / hand transfer.
	EffectSevenGive  Effect = "SEVEN_GIVE"
	EffectTenDiscard Effect = "TEN_DISCARD"

	// Lock initiation.
	EffectSuitLock        Effect = "SUIT_LOCK"
	EffectNumberLock      Effect = "NUMBER_LOCK"
	EffectColorLock       Effect = "COLOR_LOCK"
	EffectStrictLock      Effect = "STRICT_LOCK"
	EffectParityLockEven  Effect = "PARITY_LOCK_EVEN"
	EffectParityLockOdd   Effect = "PARITY_LOCK_ODD"
	EffectDoubleDigitSeal Effect = "DOUBLE_DIGIT_SEAL"
	EffectHotMilk         Effect = "HOT_MILK"
	EffectPartialLock     Effect = "PARTIAL_LOCK"
)

// IsRevolutionClass reports whether the effect inverts or re-inverts
// the strength ordering. Omen suppresses the entire class.
func (e Effect) IsRevolutionClass() bool {
	switch e {
	case EffectRevolution, EffectGreatRevolution, EffectStairRevolution,
		EffectNanasanRevolution, EffectFusionRevolution,
		EffectReligiousRevolution, EffectElevenBack, EffectTwoBack:
		return true
	}
	return false
}

// IsFieldClearing reports whether the effect clears the field.
func (e Effect) IsFieldClearing() bool {
	switch e {
	case EffectEightCut, EffectSpadeThreeReturn, EffectTaepodong:
		return true
	}
	return false
}

// IsLockInitiation reports whether the effect latches a lock.
func (e Effect) IsLockInitiation() bool {
	switch e {
	case EffectSuitLock, EffectNumberLock, EffectColorLock, EffectStrictLock,
		EffectParityLockEven, EffectParityLockOdd, EffectDoubleDigitSeal,
		EffectHotMilk, EffectPartialLock:
		return true
	}
	return false
}

// IsForcedDiscard reports whether the effect forces a discard or hand
// transfer.
func (e Effect) IsForcedDiscard() bool {
	return e == EffectSevenGive || e == EffectTenDiscard
}
