package news

import (
	"testing"
)

func TestFilterer_Run_KeywordMatch(t *testing.T) {
	filterer := NewFilterer([]string{"openai", "machine learning"})

	relevant := Item{
		Title:   "OpenAI launches new model",
		Summary: "details...",
		URL:     "https://x/1",
	}
	if !filterer.Run(relevant) {
		t.Errorf("Item mentioning 'OpenAI' in title should be relevant")
	}

	irrelevant := Item{
		Title:   "Local bakery opens",
		Summary: "bread",
		URL:     "https://x/2",
	}
	if filterer.Run(irrelevant) {
		t.Errorf("Item without any keyword should not be relevant")
	}
}

func TestFilterer_Run_MatchesSummary(t *testing.T) {
	filterer := NewFilterer([]string{"neural network"})

	item := Item{
		Title:   "Research roundup",
		Summary: "A new Neural Network architecture was published today",
	}
	if !filterer.Run(item) {
		t.Errorf("Keyword in summary should match case-insensitively")
	}
}

func TestFilterer_Run_CaseFolding(t *testing.T) {
	filterer := NewFilterer([]string{"ChatGPT"})

	item := Item{Title: "chatgpt usage surges"}
	if !filterer.Run(item) {
		t.Errorf("Mixed-case keyword should match lower-case text")
	}

	item = Item{Title: "CHATGPT USAGE SURGES"}
	if !filterer.Run(item) {
		t.Errorf("Keyword should match upper-case text")
	}
}

func TestFilterer_Run_EmptyKeywords(t *testing.T) {
	filterer := NewFilterer(nil)

	item := Item{Title: "Anything at all"}
	if filterer.Run(item) {
		t.Errorf("Empty keyword set should match nothing")
	}
}

func TestFilterer_Run_Determinism(t *testing.T) {
	filterer := NewFilterer([]string{"llm"})

	item := Item{Title: "The state of LLM tooling"}
	first := filterer.Run(item)
	for i := 0; i < 5; i++ {
		if filterer.Run(item) != first {
			t.Fatalf("Filterer result changed across calls")
		}
	}
}
