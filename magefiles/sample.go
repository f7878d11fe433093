//go:build mage

package main

import (
	"fmt"
	"strconv"

	"github.com/pdiddy/cord-insights/internal/table"
)

const samplePath = "data/sample_metadata.csv"

var (
	sampleJournals = []string{"The Lancet", "BMJ", "Nature", "PLoS One", "", "Vaccine", "Viruses"}
	sampleSources  = []string{"PMC", "Medline", "WHO", "Elsevier", "", "MedRxiv"}
	sampleTopics   = []string{
		"vaccine efficacy", "transmission dynamics", "clinical characteristics",
		"mental health", "mask policy", "viral shedding", "antibody response",
	}
	sampleDates = []string{"2019-12-30", "2020-03-15", "2020", "2020-07-01", "2021-01-20", "unknown", ""}
)

// Sample writes a small deterministic sample export to data/sample_metadata.csv.
// It includes blank journals and sources, unparseable dates, and one
// duplicated identifier so every cleaning rule is exercised.
func Sample() error {
	header := []string{"cord_uid", "sha", "source_x", "title", "doi", "abstract", "publish_time", "authors", "journal"}

	var rows [][]string
	for i := 0; i < 60; i++ {
		topic := sampleTopics[i%len(sampleTopics)]
		rows = append(rows, []string{
			fmt.Sprintf("s%05d", i),
			"",
			sampleSources[i%len(sampleSources)],
			fmt.Sprintf(" COVID-19 %s study %d ", topic, i),
			"10.0000/sample." + strconv.Itoa(i),
			fmt.Sprintf("We report findings on %s among %d participants.", topic, 50+i*7),
			sampleDates[i%len(sampleDates)],
			fmt.Sprintf("Author%d, A.; Author%d, B.", i, i+1),
			sampleJournals[i%len(sampleJournals)],
		})
	}
	dup := append([]string(nil), rows[0]...)
	dup[3] = "Duplicate of the first paper"
	rows = append(rows, dup)

	if err := table.Write(samplePath, table.New(header, rows)); err != nil {
		return err
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), samplePath)
	return nil
}
