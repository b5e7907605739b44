package recon

import (
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

type levelKey struct {
	level models.MatchLevel
	key   models.Key
}

// masterIndex looks up master rows at decreasing key specificity.
type masterIndex struct {
	rows map[levelKey][]models.LineItem
}

var matchLevels = []models.MatchLevel{
	models.LevelExact,
	models.LevelNoUnit,
	models.LevelNoSpec,
	models.LevelNameOnly,
}

func reduceKey(k models.Key, level models.MatchLevel) models.Key {
	switch level {
	case models.LevelNoUnit:
		k.Unit = ""
	case models.LevelNoSpec:
		k.Spec = ""
	case models.LevelNameOnly:
		k.Spec, k.Unit = "", ""
	}
	return k
}

func newMasterIndex(master []models.LineItem) *masterIndex {
	idx := &masterIndex{rows: make(map[levelKey][]models.LineItem)}
	for _, rec := range master {
		if rec.Name == "" || rec.Excluded() {
			continue
		}
		for _, level := range matchLevels {
			lk := levelKey{level, reduceKey(rec.Key(), level)}
			idx.rows[lk] = append(idx.rows[lk], rec)
		}
	}
	return idx
}

// lookup returns the master rows at the most specific level that has any.
func (idx *masterIndex) lookup(k models.Key) (models.MatchLevel, []models.LineItem) {
	for _, level := range matchLevels {
		if rows := idx.rows[levelKey{level, reduceKey(k, level)}]; len(rows) > 0 {
			return level, rows
		}
	}
	return models.LevelNone, nil
}

// Presence checks every plan record for a master row with the same key,
// relaxing the key one level at a time. Excluded plan rows are reported
// without matching.
func Presence(plans, master []models.LineItem) []models.PresenceResult {
	idx := newMasterIndex(master)
	results := make([]models.PresenceResult, 0, len(plans))
	for _, rec := range plans {
		res := models.PresenceResult{Record: rec, Level: models.LevelNone}
		if rec.Name == "" || rec.Excluded() {
			res.Status = models.StatusExcluded
			results = append(results, res)
			continue
		}

		level, rows := idx.lookup(rec.Key())
		res.Level = level
		switch level {
		case models.LevelExact:
			res.Status = models.StatusFound
		case models.LevelNone:
			res.Status = models.StatusNotFound
		default:
			res.Status = models.StatusWeakFound
		}
		if len(rows) > 0 {
			res.MasterHit = rows[0].Key().String()
			res.MasterPages = pagesOf(rows)
		}
		results = append(results, res)
	}
	return results
}
