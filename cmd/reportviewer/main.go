package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"playtracker/internal/config"
	"playtracker/internal/models"
	"playtracker/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
		topN       = flag.Int("top", 10, "Number of entries to show per list")
		days       = flag.Int("days", 14, "Number of recent days to show")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	var report models.StatsReport
	found, err := st.Get(cfg.Store.ReportKey, &report)
	if err != nil {
		log.Fatalf("Failed to read report: %v", err)
	}
	if !found {
		fmt.Println("No report found yet. Run playtracker first.")
		return
	}

	fmt.Printf("📊 Listening Report\n")
	fmt.Printf("===================\n")
	fmt.Printf("Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Total plays: %d\n", report.TotalPlays)

	printCounts("🎵 Top Tracks", report.Tracks, *topN)
	printCounts("🎤 Top Artists", report.Artists, *topN)

	if len(report.TopAlbums) > 0 {
		fmt.Printf("\n💿 Top Albums\n")
		fmt.Printf("-------------\n")
		for i, album := range report.TopAlbums {
			if i >= *topN {
				break
			}
			fmt.Printf("%2d. %s - %s (%d plays)\n", i+1, album.Name, album.Artist, album.Count)
		}
	}

	printDaily(report, *days)
	printTopLists(report.TopLists, *topN)
}

// printCounts renders one ranked name/count list.
func printCounts(title string, counts []models.NamedCount, limit int) {
	if len(counts) == 0 {
		return
	}

	fmt.Printf("\n%s\n", title)
	fmt.Printf("-------------\n")
	for i, entry := range counts {
		if i >= limit {
			break
		}
		fmt.Printf("%2d. %s (%d plays)\n", i+1, entry.Name, entry.Count)
	}
}

// printDaily renders the most recent days, newest first.
func printDaily(report models.StatsReport, limit int) {
	if len(report.DailyCounts) == 0 {
		return
	}

	days := make([]string, 0, len(report.DailyCounts))
	for day := range report.DailyCounts {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	fmt.Printf("\n📅 Daily Plays\n")
	fmt.Printf("-------------\n")
	for i, day := range days {
		if i >= limit {
			break
		}
		fmt.Printf("%s: %d plays, %d unique tracks\n",
			day, report.DailyCounts[day], report.DailyUniqueTracks[day])
	}
}

// printTopLists renders the enrichment lists if the report carries them.
func printTopLists(lists *models.TopListsReport, limit int) {
	if lists == nil {
		return
	}

	windowNames := map[string]string{
		models.WindowShort:  "last 4 weeks",
		models.WindowMedium: "last 6 months",
		models.WindowLong:   "all time",
	}

	for _, window := range models.Windows {
		tracks := lists.Tracks[window]
		artists := lists.Artists[window]
		if len(tracks) == 0 && len(artists) == 0 {
			continue
		}

		fmt.Printf("\n🏆 Spotify Top Lists (%s)\n", windowNames[window])
		fmt.Printf("-------------\n")
		for i, item := range tracks {
			if i >= limit {
				break
			}
			fmt.Printf("  track  %2d. %s - %s\n", i+1, item.Name, item.Artist)
		}
		for i, item := range artists {
			if i >= limit {
				break
			}
			fmt.Printf("  artist %2d. %s\n", i+1, item.Name)
		}
	}
}
