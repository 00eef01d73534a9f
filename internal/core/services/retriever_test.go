package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/embedding/hash"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/vector/memory"
	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

func indexedRetriever(t *testing.T, chunks ...domain.Chunk) *RetrieveService {
	t.Helper()
	ctx := context.Background()

	embedder := hash.New(64)
	index := memory.New()
	for i := range chunks {
		if chunks[i].Embedding == nil {
			vec, err := embedder.Embed(ctx, chunks[i].Content)
			require.NoError(t, err)
			chunks[i].Embedding = vec
		}
		require.NoError(t, index.Add(ctx, chunks[i]))
	}
	index.SetModel(embedder.ModelName())

	return NewRetrieveService(embedder, index, newMemStore(), domain.DefaultTopK)
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	svc := indexedRetriever(t)

	_, err := svc.Retrieve(context.Background(), "   ", 4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	svc := indexedRetriever(t)

	_, err := svc.Retrieve(context.Background(), "theft penalty", 4)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestRetrieve_ModelMismatch(t *testing.T) {
	chunk := domain.Chunk{ID: "c1", Law: "Penal Code", Content: "Article 10. Theft."}
	svc := indexedRetriever(t, chunk)
	svc.vectors.SetModel("another-model-v2")

	_, err := svc.Retrieve(context.Background(), "theft", 4)
	assert.ErrorIs(t, err, domain.ErrModelMismatch)
}

func TestRetrieve_RanksRelevantFirst(t *testing.T) {
	svc := indexedRetriever(t,
		domain.Chunk{ID: "c1", Law: "Penal Code", Article: "10", Content: "Article 10. Theft is punishable by imprisonment for a term of three months."},
		domain.Chunk{ID: "c2", Law: "Labor Law", Article: "39", Content: "Article 39. Annual leave entitlement is thirty days."},
	)

	hits, err := svc.Retrieve(context.Background(), "What is the punishment for theft?", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "c1", hits[0].Chunk.ID)
	assert.Equal(t, "Penal Code", hits[0].Chunk.Law)
}

func TestRetrieve_Deterministic(t *testing.T) {
	svc := indexedRetriever(t,
		domain.Chunk{ID: "c1", Law: "Penal Code", Content: "Theft provisions and penalties."},
		domain.Chunk{ID: "c2", Law: "Labor Law", Content: "Employment contract provisions."},
		domain.Chunk{ID: "c3", Law: "Tax Law", Content: "Income tax provisions."},
	)

	first, err := svc.Retrieve(context.Background(), "legal provisions", 3)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := svc.Retrieve(context.Background(), "legal provisions", 3)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Chunk.ID, again[j].Chunk.ID)
			assert.Equal(t, first[j].Score, again[j].Score)
		}
	}
}

func TestRetrieve_MissingAttributionFails(t *testing.T) {
	svc := indexedRetriever(t,
		domain.Chunk{ID: "c1", Law: "", Content: "Orphaned text with no source."},
	)

	_, err := svc.Retrieve(context.Background(), "orphaned text", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attribution")
}

func TestRetrieve_DefaultKWhenZero(t *testing.T) {
	var chunks []domain.Chunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, domain.Chunk{
			ID:      string(rune('a' + i)),
			Law:     "Penal Code",
			Content: "Provision text number variant.",
		})
	}
	svc := indexedRetriever(t, chunks...)

	hits, err := svc.Retrieve(context.Background(), "provision text", 0)
	require.NoError(t, err)
	assert.Len(t, hits, domain.DefaultTopK)
}

func TestClassify(t *testing.T) {
	svc := NewRetrieveService(hash.New(64), memory.New(), newMemStore(), 4)

	tests := []struct {
		query string
		want  domain.Intent
	}{
		{"What is the penalty for theft?", domain.IntentGeneral},
		{"What does Article 10 of the Penal Code say?", domain.IntentArticleLookup},
		{"ما هي المادة 50 من قانون العمل؟", domain.IntentArticleLookup},
		{"Compare the Labor Law and the Civil Service Law on leave", domain.IntentComparison},
		{"قارن بين قانون العمل وقانون الخدمة المدنية", domain.IntentComparison},
		{"Draft an employment contract for a site engineer", domain.IntentDocumentRequest},
		{"اكتب عقد عمل لمهندس", domain.IntentDocumentRequest},
		{"My case: my employer withheld my salary, can I sue?", domain.IntentCaseAnalysis},
		{"حدثت لي قضية مع صاحب العمل", domain.IntentCaseAnalysis},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Classify(tt.query))
		})
	}
}

func TestClassify_ComparisonBeatsArticleLookup(t *testing.T) {
	svc := NewRetrieveService(hash.New(64), memory.New(), newMemStore(), 4)

	// A query naming an article inside a comparison request is a
	// comparison; category checks run before article detection.
	intent := svc.Classify("Compare Article 10 of the Penal Code with Article 5 of the Tax Law")
	assert.Equal(t, domain.IntentComparison, intent)
}
