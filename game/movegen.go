package game

import bb "viruswar/bitboard"

// Grow dilates mask by one cell orthogonally and diagonally. Left and right
// guards stop horizontal spills into the neighbouring row.
func Grow(g *Geometry, mask bb.Bitboard) bb.Bitboard {
	lbb := mask.And(g.NotLSide).Shr(1)
	rbb := mask.And(g.NotRSide).Shl(1)
	hgrow := mask.Or(lbb).Or(rbb)

	ubb := hgrow.Shl(g.N).And(g.All)
	dbb := hgrow.Shr(g.N)
	return hgrow.Or(ubb).Or(dbb)
}

// NextSteps returns the squares reachable by the side owning my: empty
// squares and live opponent cells adjacent to the live group, where
// opponent cells killed by my side extend the group.
func NextSteps(g *Geometry, my, opp, dead bb.Bitboard) bb.Bitboard {
	empty := g.All.AndNot(my.Or(opp))
	oppDead := opp.And(dead)
	myLive := my.AndNot(dead)
	oppLive := opp.AndNot(oppDead)
	place := empty.Or(oppLive)

	for {
		cloud := Grow(g, myLive)
		extra := cloud.And(oppDead)
		if extra.IsZero() {
			return cloud.And(place)
		}
		myLive = myLive.Or(extra)
		oppDead = oppDead.Xor(extra)
	}
}
