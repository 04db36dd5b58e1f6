package hero

import (
	"math"

	"github.com/decker502/hero/pkg/config"
)

// Fusion records one absorption: Victim was merged into Survivor.
// Both are arena indices.
type Fusion struct {
	Survivor int
	Victim   int
}

// resolveFusions merges overlapping galaxy particles near the pointer.
//
// Only cells within ceil(InteractionRadius/cellSize) of the pointer cell
// are scanned, and only particles within FusionRadius of the pointer take
// part. Pairs are compared inside a single cell; particles straddling a
// cell border are not tested against each other. Events are appended to
// out, which is returned.
func resolveFusions(g *Grid, arena []Particle, px, py float64, s *config.HeroSettings, out []Fusion) []Fusion {
	reach := int(math.Ceil(s.InteractionRadius / g.CellSize()))
	mouseCol, mouseRow := g.CellOf(px, py)
	fusionSq := s.FusionRadius * s.FusionRadius

	for row := mouseRow - reach; row <= mouseRow+reach; row++ {
		for col := mouseCol - reach; col <= mouseCol+reach; col++ {
			cell := g.Cell(col, row)
			for i := 0; i < len(cell); i++ {
				p1 := galaxyAt(arena, cell[i])
				if p1 == nil || !p1.active {
					continue
				}
				dx := p1.body.X - px
				dy := p1.body.Y - py
				if dx*dx+dy*dy > fusionSq {
					continue
				}

				for j := i + 1; j < len(cell); j++ {
					p2 := galaxyAt(arena, cell[j])
					if p2 == nil || !p2.active {
						continue
					}
					ddx := p1.body.X - p2.body.X
					ddy := p1.body.Y - p2.body.Y
					reachSum := p1.body.Size + p2.body.Size
					if ddx*ddx+ddy*ddy >= reachSum*reachSum {
						continue
					}

					survivor, victim := p1, p2
					if p2.body.Size > p1.body.Size {
						survivor, victim = p2, p1
					}
					survivor.absorb(victim, s.MaxParticleSize, s.FlashIntensityMultiplier)
					out = append(out, Fusion{Survivor: survivor.index, Victim: victim.index})

					if victim == p1 {
						break
					}
				}
			}
		}
	}
	return out
}

func galaxyAt(arena []Particle, idx int) *GalaxyParticle {
	if idx < 0 || idx >= len(arena) {
		return nil
	}
	g, _ := arena[idx].(*GalaxyParticle)
	return g
}
