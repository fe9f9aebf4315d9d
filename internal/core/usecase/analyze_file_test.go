package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

func TestAnalyzeFile(t *testing.T) {
	t.Run("extracted text goes through the analysis pipeline", func(t *testing.T) {
		llm := &fakeCompletion{answers: []string{"listing", validSpecJSON, longAnswer("More?!!!")}}
		extractor := &fakeExtractor{text: "Investment brief.\nFind 3 houses\nin Austin TX."}
		uc := NewAnalyzeFileUseCase(
			extractor,
			NewClassifier(llm),
			&fakeListings{searchResults: numberedListings(5)},
			NewMarketAggregator(&fakeMarketData{}, &fakeSnippets{}),
			NewNarrativeGenerator(llm, narrativeCfg()),
			15,
		)

		result, err := uc.Execute(context.Background(), "brief.pdf", []byte("%PDF"))
		require.NoError(t, err)

		assert.Equal(t, domain.CategoryListing, result.Category)
		// Переводы строк схлопнуты, документ стал заголовком запроса
		assert.Equal(t, "Investment brief. Find 3 houses in Austin TX.", result.Title)
		// "find 3 houses" в тексте документа - явное количество
		assert.Len(t, result.Results, 3)
	})

	t.Run("unsupported file type is returned as is", func(t *testing.T) {
		llm := &fakeCompletion{answers: []string{"listing"}}
		uc := NewAnalyzeFileUseCase(
			&fakeExtractor{err: domain.ErrUnsupportedFileType},
			NewClassifier(llm),
			&fakeListings{},
			NewMarketAggregator(&fakeMarketData{}, &fakeSnippets{}),
			NewNarrativeGenerator(llm, narrativeCfg()),
			15,
		)

		_, err := uc.Execute(context.Background(), "photo.png", []byte{1, 2, 3})
		assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
		assert.Empty(t, llm.requests)
	})
}
