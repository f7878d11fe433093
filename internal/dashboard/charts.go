// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pdiddy/cord-insights/pkg/types"
)

const chartHeight = "320px"

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     "100%",
		Height:    chartHeight,
	})
}

// YearChart draws publications per year as a line chart. hasDates reports
// whether the dataset carries a publish_time column at all.
func YearChart(counts []types.YearCount, hasDates bool) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Publications over time"),
		charts.WithTitleOpts(opts.Title{Title: "Publications over time"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Papers"}),
	)

	years := make([]string, len(counts))
	data := make([]opts.LineData, len(counts))
	for i, c := range counts {
		years[i] = strconv.Itoa(c.Year)
		data[i] = opts.LineData{Value: c.Count}
	}
	if len(counts) == 0 {
		line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
			Title:    "Publications over time",
			Subtitle: emptyYearsSubtitle(hasDates),
		}))
	}

	line.SetXAxis(years).AddSeries("Papers", data)
	return line
}

func emptyYearsSubtitle(hasDates bool) string {
	if hasDates {
		return "No parseable publication dates"
	}
	return "No publish_time column available"
}

// JournalChart draws the top journals as a horizontal bar chart, largest first.
func JournalChart(counts []types.CategoryCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("Top journals"),
		charts.WithTitleOpts(opts.Title{Title: "Top journals"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Number of papers"}),
	)

	// Horizontal bars are drawn bottom-up, so feed them in reverse.
	names := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		j := len(counts) - 1 - i
		names[j] = c.Name
		data[j] = opts.BarData{Value: c.Count}
	}

	bar.SetXAxis(names).AddSeries("Papers", data)
	bar.XYReversal()
	return bar
}

// WordCloud draws title word frequencies.
func WordCloud(words []types.WordCount) *charts.WordCloud {
	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		initOpts("Title word cloud"),
		charts.WithTitleOpts(opts.Title{Title: "Title word cloud"}),
	)
	if len(words) == 0 {
		wc.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
			Title:    "Title word cloud",
			Subtitle: "No title words to show",
		}))
	}

	data := make([]opts.WordCloudData, len(words))
	for i, w := range words {
		data[i] = opts.WordCloudData{Name: w.Word, Value: w.Count}
	}
	wc.AddSeries("words", data, charts.WithWorldCloudChartOpts(opts.WordCloudChart{
		SizeRange: []float32{12, 64},
	}))
	return wc
}
