package csvcodec

import "adventuremap/internal/quest"

// Template returns the starter quest list offered as a download and used
// as the built-in sample. It has no stats block, so stats start at zero.
func Template() string {
	return `# --- MASTER QUEST LIST ---
# This is the single source of truth for all quests and bosses.
# Region: Forest, Mountains, Ocean, Kingdom
# Is_Boss: TRUE or FALSE
#
## TASKS
Region,Task,Is_Boss,Description
Forest,Solve 2 Easy LeetCode Problems,FALSE,""
Forest,Practice Binary Search Problems,FALSE,""
Forest,Timed Medium Problem,TRUE,""
Mountains,Study Load Balancing Concepts,FALSE,""
Mountains,Design URL Shortener System,TRUE,""
Ocean,Refactor Code & Add Comments,FALSE,""
Ocean,Complete Resume Deep Dive Session,TRUE,""
Kingdom,Practice 'Tell me about yourself',FALSE,""
Kingdom,30-Min Mock Interview,TRUE,"Mock interview with Jane Doe."
`
}

// SampleConfig names the adventure the way the built-in sample does.
func SampleConfig() quest.Config {
	return quest.Config{
		AdventureName: "Adventure Map - Get Your Job Offer",
		Region1Name:   "Forest of Algorithms",
		Region2Name:   "Mountains of Systems",
		Region3Name:   "Ocean of Projects",
		Region4Name:   "Kingdom of Interviews",
	}
}
