package csvcodec_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adventuremap/internal/csvcodec"
	"adventuremap/internal/quest"
)

func seqIDs() csvcodec.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func sampleDocument() quest.Document {
	return quest.Document{
		Tasks: []quest.Task{
			{ID: "a1", Region: quest.RegionForest, Title: `Read "Clean Code", ch. 1`, Status: quest.StatusTodo},
			{ID: "a2", Region: quest.RegionMountains, Title: "Design a cache", Status: quest.StatusInProgress, IsBoss: true, Description: `ask "why" twice`},
			{ID: "a3", Region: quest.RegionOcean, Title: "Ship it", Status: quest.StatusDone, CompletionDate: "2024-05-01", ShouldDuplicate: true},
			{ID: "a4", Region: quest.RegionKingdom, Title: `""`, Status: quest.StatusDone, IsBoss: true, Description: "a, b, c", CompletionDate: "2024-05-02"},
		},
		Stats: quest.Stats{
			Streak:               3,
			TotalXP:              145,
			LastCompletedDate:    "2024-05-02",
			CurrentWeekStartDate: "2024-04-29",
			MonthlyRewardClaimed: true,
			LastMonthLevel:       2,
			LastMonthlyClaim:     "2024-05-01T09:30:00Z",
			DailyRewardClaimed:   "2024-05-01",
			DailyCompletions: quest.DailyCompletions{
				Date:    "2024-05-02",
				Regions: []quest.Region{quest.RegionKingdom, quest.RegionOcean},
			},
		},
		Config: quest.Config{
			AdventureName: `The "Big" Hunt, Part 2`,
			Region1Name:   "Woods",
		},
	}
}

func TestWriteParse_RoundTrip(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	backup, err := csvcodec.Parse(csvcodec.Write(doc), seqIDs())
	require.NoError(t, err)

	assert.True(t, backup.HasConfig)
	assert.Equal(t, doc, backup.Doc)
}

func TestWriteParse_RoundTripZeroStats(t *testing.T) {
	t.Parallel()

	doc := quest.Document{
		Tasks: []quest.Task{{ID: "x", Region: quest.RegionOcean, Title: "Swim", Status: quest.StatusTodo}},
	}
	backup, err := csvcodec.Parse(csvcodec.Write(doc), seqIDs())
	require.NoError(t, err)
	assert.Equal(t, doc, backup.Doc)
}

func TestWrite_Format(t *testing.T) {
	t.Parallel()

	out := csvcodec.Write(sampleDocument())

	assert.Contains(t, out, "## TASKS\r\n"+csvcodec.TasksHeader+"\r\n")
	assert.Contains(t, out, `Forest,"Read ""Clean Code"", ch. 1",todo,FALSE,a1,"",,FALSE`)
	assert.Contains(t, out, "\r\n## STATS\r\nMetric,Value\r\n")
	assert.Contains(t, out, "dailyCompletions,2024-05-02;Kingdom;Ocean\r\n")
	for _, key := range csvcodec.StatKeys {
		assert.Contains(t, out, "\r\n"+key+",")
	}
}

func TestWrite_NormalizedTextRoundTrips(t *testing.T) {
	t.Parallel()

	doc := quest.Document{
		Tasks: []quest.Task{
			{ID: "n", Region: quest.RegionForest, Title: "two\nlines", Status: quest.StatusTodo, Description: "a\r\nb, \"c\""},
		},
		Config: quest.Config{AdventureName: "Job\nHunt"},
	}
	require.NoError(t, doc.Normalize())
	assert.Equal(t, "two lines", doc.Tasks[0].Title)

	backup, err := csvcodec.Parse(csvcodec.Write(doc), seqIDs())
	require.NoError(t, err)
	require.Len(t, backup.Doc.Tasks, 1)
	assert.Equal(t, doc.Tasks[0], backup.Doc.Tasks[0])
	assert.Equal(t, doc.Config, backup.Doc.Config)
}

func TestParse_PositionalRowsWithoutHeader(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"# comment",
		"",
		"## TASKS",
		`village,"Old quest",InProgress,true`,
		`Kingdom,"Interview",done,FALSE,k-1,"prep",2024-01-02`,
	}, "\n")

	backup, err := csvcodec.Parse(text, seqIDs())
	require.NoError(t, err)
	require.Len(t, backup.Doc.Tasks, 2)

	first := backup.Doc.Tasks[0]
	assert.Equal(t, quest.RegionOcean, first.Region)
	assert.Equal(t, quest.StatusInProgress, first.Status)
	assert.True(t, first.IsBoss)
	assert.Equal(t, "gen-1", first.ID)
	assert.Empty(t, first.Description)
	assert.Empty(t, first.CompletionDate)

	second := backup.Doc.Tasks[1]
	assert.Equal(t, "k-1", second.ID)
	assert.Equal(t, "prep", second.Description)
	assert.Equal(t, "2024-01-02", second.CompletionDate)
	assert.False(t, backup.HasConfig)
}

func TestParse_TemplateInOverwriteMode(t *testing.T) {
	t.Parallel()

	backup, err := csvcodec.Parse(csvcodec.Template(), seqIDs())
	require.NoError(t, err)
	require.Len(t, backup.Doc.Tasks, 9)
	for _, task := range backup.Doc.Tasks {
		assert.Equal(t, quest.StatusTodo, task.Status)
	}
	assert.Equal(t, quest.Stats{}, backup.Doc.Stats)
}

func TestParse_Stats(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"## TASKS",
		"## STATS",
		"Metric,Value",
		"streak,abc",
		"totalXP,120",
		"lastMonthLevel,2.0",
		"lastCompletedDate,",
		"currentWeekStartDate,2024-01-01T00:00:00.000Z",
		"monthlyRewardClaimed,true",
		"favouriteColor,blue",
		"bossesDefeated,7",
	}, "\r\n")

	backup, err := csvcodec.Parse(text, seqIDs())
	require.NoError(t, err)

	s := backup.Doc.Stats
	assert.Equal(t, 0, s.Streak)
	assert.Equal(t, 120, s.TotalXP)
	assert.Equal(t, 2, s.LastMonthLevel)
	assert.Empty(t, s.LastCompletedDate)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", s.CurrentWeekStartDate)
	assert.True(t, s.MonthlyRewardClaimed)
	assert.Empty(t, backup.Doc.Tasks)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		line int
	}{
		{"no tasks section", "Forest,x,todo", 1},
		{"missing section marker", "# only comments", 0},
		{"unknown region", "## TASKS\nDesert,x,todo", 2},
		{"bad status", "## TASKS\nForest,x,review", 2},
		{"missing status", "## TASKS\nForest,x", 2},
		{"broken quotes", "## TASKS\nForest,\"x,todo", 2},
		{"duplicate id", "## TASKS\nForest,a,todo,FALSE,id1\nOcean,b,todo,FALSE,id1", 3},
		{"bad daily completions", "## TASKS\n## STATS\ndailyCompletions,2024-01-01;Moon", 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := csvcodec.Parse(tt.text, seqIDs())
			require.Error(t, err)

			var pe *csvcodec.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestParse_SkipsUnknownSections(t *testing.T) {
	t.Parallel()

	text := "## TASKS\nForest,a,todo\n## NOTES\nanything,at,all\n"
	backup, err := csvcodec.Parse(text, seqIDs())
	require.NoError(t, err)
	assert.Len(t, backup.Doc.Tasks, 1)
}

func TestParseNewQuests_HeaderedRow(t *testing.T) {
	t.Parallel()

	text := "Region,Task,Is_Boss,Description\nForest,Solve 2 Easy Problems,FALSE,\"\""
	tasks, err := csvcodec.ParseNewQuests(text, seqIDs())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, quest.Task{
		ID:     "gen-1",
		Region: quest.RegionForest,
		Title:  "Solve 2 Easy Problems",
		Status: quest.StatusTodo,
	}, tasks[0])
}

func TestParseNewQuests_IgnoresStatusAndIDColumns(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	tasks, err := csvcodec.ParseNewQuests(csvcodec.Write(doc), seqIDs())
	require.NoError(t, err)
	require.Len(t, tasks, len(doc.Tasks))

	for i, task := range tasks {
		assert.Equal(t, fmt.Sprintf("gen-%d", i+1), task.ID)
		assert.Equal(t, quest.StatusTodo, task.Status)
		assert.Empty(t, task.CompletionDate)
		assert.False(t, task.ShouldDuplicate)
		assert.Equal(t, doc.Tasks[i].IsBoss, task.IsBoss)
		assert.Equal(t, doc.Tasks[i].Region, task.Region)
	}
}

func TestParseNewQuests_PositionalWithoutSections(t *testing.T) {
	t.Parallel()

	tasks, err := csvcodec.ParseNewQuests("Mountains,Climb,TRUE,steep\nocean,Dive", seqIDs())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.True(t, tasks[0].IsBoss)
	assert.Equal(t, "steep", tasks[0].Description)
	assert.Equal(t, quest.RegionOcean, tasks[1].Region)
}

func TestParseNewQuests_Errors(t *testing.T) {
	t.Parallel()

	_, err := csvcodec.ParseNewQuests("Forest", seqIDs())
	var pe *csvcodec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line)

	_, err = csvcodec.ParseNewQuests("Nowhere,quest", seqIDs())
	require.ErrorAs(t, err, &pe)
}

func TestTemplate_Shape(t *testing.T) {
	t.Parallel()

	tasks, err := csvcodec.ParseNewQuests(csvcodec.Template(), seqIDs())
	require.NoError(t, err)
	require.Len(t, tasks, 9)

	perRegion := map[quest.Region]int{}
	bosses := map[quest.Region]int{}
	for _, task := range tasks {
		perRegion[task.Region]++
		if task.IsBoss {
			bosses[task.Region]++
		}
	}
	for _, r := range quest.Regions {
		assert.GreaterOrEqual(t, perRegion[r], 2, r)
		assert.LessOrEqual(t, perRegion[r], 3, r)
		assert.Equal(t, 1, bosses[r], r)
	}
	assert.Equal(t, "Mock interview with Jane Doe.", tasks[8].Description)
}
