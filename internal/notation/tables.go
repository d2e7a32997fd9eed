package notation

// Vertical glyph offsets on the 1350x750 staff surface. Sharps use the wider
// glyph and sit on the same line or space as their natural.
var trebleTable = map[int]placement{
	60: {528, OnLine},
	61: {473, SharpOnLine},
	62: {496, BetweenLines},
	63: {441, SharpBetweenLines},
	64: {464, OnLine},
	65: {432, BetweenLines},
	66: {377, SharpBetweenLines},
	67: {400, OnLine},
	68: {345, SharpOnLine},
	69: {368, BetweenLines},
	70: {313, SharpBetweenLines},
	71: {336, OnLine},
	72: {304, BetweenLines},
	73: {249, SharpBetweenLines},
	74: {272, OnLine},
	75: {217, SharpOnLine},
	76: {240, BetweenLines},
	77: {208, OnLine},
	78: {153, SharpOnLine},
	79: {176, BetweenLines},
	80: {121, SharpBetweenLines},
	81: {144, OnLine},
	82: {89, SharpOnLine},
}

var bassTable = map[int]placement{
	40: {528, OnLine},
	41: {496, BetweenLines},
	42: {441, SharpBetweenLines},
	43: {464, OnLine},
	44: {409, SharpOnLine},
	45: {432, BetweenLines},
	46: {377, SharpBetweenLines},
	47: {400, OnLine},
	48: {368, BetweenLines},
	49: {313, SharpBetweenLines},
	50: {336, OnLine},
	51: {281, SharpOnLine},
	52: {304, BetweenLines},
	53: {272, OnLine},
	54: {217, SharpOnLine},
	55: {240, BetweenLines},
	56: {185, SharpBetweenLines},
	57: {208, OnLine},
	58: {153, SharpOnLine},
	59: {176, BetweenLines},
	60: {144, OnLine},
	61: {89, SharpOnLine},
}
