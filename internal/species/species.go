// Package species resolves AOU codes against the BBS species list.
package species

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tphakala/bbs-go/internal/errors"
	"github.com/tphakala/bbs-go/internal/logging"
)

func getLogger() *slog.Logger {
	logger := logging.ForService("species")
	if logger == nil {
		logger = slog.Default().With("service", "species")
	}
	return logger
}

// Info is one species list entry.
type Info struct {
	AOU        int
	CommonName string
	Genus      string
	Species    string
}

// ScientificName returns the genus-species binomial.
func (i Info) ScientificName() string {
	return strings.TrimSpace(i.Genus + " " + i.Species)
}

// Registry maps AOU codes to species list entries.
type Registry struct {
	byCode map[int]Info
}

// Len returns the number of loaded entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byCode)
}

// Lookup returns the entry for an AOU code.
func (r *Registry) Lookup(aou int) (Info, bool) {
	if r == nil {
		return Info{}, false
	}
	info, ok := r.byCode[aou]
	return info, ok
}

// CommonName returns the common name for a code, or a plain "AOU <code>"
// placeholder for species missing from the list, so chart titles and
// report rows never come up empty.
func (r *Registry) CommonName(aou int) string {
	if info, ok := r.Lookup(aou); ok {
		return info.CommonName
	}
	return fmt.Sprintf("AOU %d", aou)
}

// LoadRegistry reads a species list CSV with at least the columns AOU,
// English_Common_Name, Genus and Species. Malformed rows are skipped,
// duplicate codes keep the first entry.
func LoadRegistry(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("species").
			Category(errors.CategoryFileIO).
			FileContext(path, 0).
			Build()
	}
	defer func() {
		_ = file.Close()
	}()
	return readRegistry(file, path)
}

func readRegistry(r io.Reader, path string) (*Registry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.New(err).
			Component("species").
			Category(errors.CategoryFileParsing).
			FileContext(path, 0).
			Build()
	}
	if len(records) == 0 {
		return nil, errors.Newf("species list %s is empty", path).
			Component("species").
			Category(errors.CategoryFileParsing).
			Build()
	}

	head := records[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}

	iAOU := idx("AOU")
	iCommon := idx("English_Common_Name")
	iGenus := idx("Genus")
	iSpecies := idx("Species")
	if iAOU < 0 || iCommon < 0 {
		return nil, errors.Newf("species list %s lacks AOU or English_Common_Name column", path).
			Component("species").
			Category(errors.CategoryValidation).
			Build()
	}

	logger := getLogger()
	registry := &Registry{byCode: make(map[int]Info)}
	skipped := 0
	for _, row := range records[1:] {
		if iAOU >= len(row) || iCommon >= len(row) {
			skipped++
			continue
		}
		aou, err := strconv.Atoi(strings.TrimSpace(row[iAOU]))
		if err != nil {
			skipped++
			continue
		}
		if _, dup := registry.byCode[aou]; dup {
			continue
		}
		info := Info{
			AOU:        aou,
			CommonName: normalizeCommonName(strings.TrimSpace(row[iCommon])),
		}
		if iGenus >= 0 && iGenus < len(row) {
			info.Genus = strings.TrimSpace(row[iGenus])
		}
		if iSpecies >= 0 && iSpecies < len(row) {
			info.Species = strings.TrimSpace(row[iSpecies])
		}
		registry.byCode[aou] = info
	}

	if skipped > 0 {
		logger.Warn("skipped malformed species list rows",
			"file", path,
			"skipped", skipped)
	}
	logger.Debug("species list loaded",
		"file", path,
		"entries", registry.Len())
	return registry, nil
}

var titleCaser = cases.Title(language.AmericanEnglish)

// normalizeCommonName tames the all-caps names found in older species
// list editions. Mixed-case names pass through untouched.
func normalizeCommonName(name string) string {
	if name == "" || name != strings.ToUpper(name) || name == strings.ToLower(name) {
		return name
	}
	return titleCaser.String(strings.ToLower(name))
}
