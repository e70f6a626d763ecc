// Package solver - cross-species diversity controller.
package solver

import "github.com/katalvlaran/ringstar/ring"

// diversityCheck runs every diversityInterval generations: track each
// species' best cost, count stagnant checks, and when two distinct species
// have converged within convergenceTol while both sat stagnant for more
// than divStagnantChecks checks, re-seed one of the two with fresh random
// individuals. At most one species is re-seeded per check.
//
// Every individual is cached right after EvolveSpecie, so the per-species
// bests come straight from the caches; no re-evaluation happens here.
//
// Complexity: O(S*P) cache scan + O(S^2) pair scan.
func (s *Solver) diversityCheck(gen int) {
	var (
		n     = len(s.population)
		bests = make([]float64, n)
		sp    int
	)
	for sp = 0; sp < n; sp++ {
		bests[sp] = cachedBest(s.population[sp])
	}

	// Update per-species stagnation counters against the previous check.
	for sp = 0; sp < n; sp++ {
		if bests[sp] < s.divBest[sp]-1e-9 {
			s.divStagnant[sp] = 0
		} else {
			s.divStagnant[sp]++
		}
		s.divBest[sp] = bests[sp]
	}

	// Find one converged, mutually stalled pair and re-seed its costlier
	// member (the later one on a tie), so progress is never thrown away.
	var i, j int
	for i = 0; i < n; i++ {
		if s.divStagnant[i] <= divStagnantChecks {
			continue
		}
		for j = i + 1; j < n; j++ {
			if s.divStagnant[j] <= divStagnantChecks {
				continue
			}
			if diff := bests[i] - bests[j]; diff < convergenceTol && diff > -convergenceTol {
				victim := j
				if bests[i] > bests[j] {
					victim = i
				}
				s.reseedSpecies(gen, victim)
				return
			}
		}
	}
}

// reseedSpecies replaces every individual of species sp with fresh random
// rings (as in initial seeding) and clears its tracking state. The RNG
// stream is offset by SpeciesCount so it can never collide with the
// generation's evolution streams.
func (s *Solver) reseedSpecies(gen, sp int) {
	rng := ring.NewRand(ring.TaskSeed(s.cfg.Seed, gen, sp+s.cfg.SpeciesCount))

	species := s.population[sp]
	var i int
	for i = 0; i < len(species); i++ {
		species[i] = ring.NewIndividual(ring.RandomRing(s.oracle.N(), rng))
	}

	s.divBest[sp] = ring.CostSentinel
	s.divStagnant[sp] = 0

	s.log.Debug().
		Int("generation", gen).
		Int("species", sp).
		Msg("re-seeded converged species")
}

// cachedBest scans a species' cached costs for the minimum. Individuals
// leave EvolveSpecie evaluated, so the sentinel only appears on freshly
// re-seeded species, which rank last naturally.
func cachedBest(sp ring.Species) float64 {
	best := ring.CostSentinel

	var i int
	for i = 0; i < len(sp); i++ {
		if sp[i].CachedCost < best {
			best = sp[i].CachedCost
		}
	}

	return best
}
