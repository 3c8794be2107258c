package version

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Name - имя бинаря в логах
const Name = "dungeon-sim"

// Заполняются через -ldflags "-X dungeon-sim/internal/version.Date=2026-03-02 -X dungeon-sim/internal/version.Commit=..."
var (
	Date   string // YYYY-MM-DD, UTC
	Commit string
)

// epoch - день, от которого считается номер сборки
var epoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

var errNoDate = errors.New("build date is not set")

// Build - номер сборки: сколько дней прошло от epoch до Date
func Build() (int, error) {
	if Date == "" {
		return 0, errNoDate
	}
	t, err := time.ParseInLocation(time.DateOnly, Date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("parse build date %q: %w", Date, err)
	}
	if t.Before(epoch) {
		return 0, fmt.Errorf("build date %s precedes %s", Date, epoch.Format(time.DateOnly))
	}
	return int(t.Sub(epoch) / (24 * time.Hour)), nil
}

// RunLabel помечает прогон симуляции. Сборка и сид однозначно задают уровень
// и ходы, так что прогон повторяется флагом -seed на той же сборке.
func RunLabel(seed int64) string {
	build := "dev"
	if n, err := Build(); err == nil {
		build = strconv.Itoa(n)
	}
	return fmt.Sprintf("%s/%s/seed-%d", Name, build, seed)
}

// Fields - поля стартовой записи лога
func Fields(seed int64, ticks int) logrus.Fields {
	f := logrus.Fields{
		"component": "version",
		"run":       RunLabel(seed),
		"ticks":     ticks,
	}
	if Commit != "" {
		f["commit"] = Commit
	}
	n, err := Build()
	switch {
	case errors.Is(err, errNoDate):
		// локальная сборка без ldflags
	case err != nil:
		f["build_error"] = err.Error()
	default:
		f["build"] = n
		f["build_date"] = Date
	}
	return f
}
