package firebase

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// O Firestore aceita no máximo 500 operações por batch
const batchSize = 500

var ErrNotFound = errors.New("document not found")

// Store concentra o acesso ao Firestore. Todos os dados ficam sob users/{uid}.
type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) userDoc(uid string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// deleteQueryInBatches apaga todos os documentos retornados pela query, em lotes.
// O Firestore não apaga subcoleções nem documentos relacionados sozinho.
func deleteQueryInBatches(ctx context.Context, client *firestore.Client, q firestore.Query) (int, error) {
	total := 0
	for {
		iter := q.Limit(batchSize).Documents(ctx)
		numDeleted := 0

		batch := client.Batch()
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return total, fmt.Errorf("erro ao iterar documentos para deleção: %w", err)
			}
			batch.Delete(doc.Ref)
			numDeleted++
		}
		iter.Stop()

		if numDeleted == 0 {
			return total, nil
		}

		if _, err := batch.Commit(ctx); err != nil {
			return total, fmt.Errorf("erro ao deletar batch de documentos: %w", err)
		}
		total += numDeleted
	}
}
