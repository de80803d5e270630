package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"shopeasy/internal/domain/repository"
	"shopeasy/pkg/errors"
)

type firestoreDocumentGateway struct {
	client   *firestore.Client
	identity repository.IdentitySource
	attempts int
	backoff  time.Duration
}

func NewFirestoreDocumentGateway(client *firestore.Client, identity repository.IdentitySource, attempts int, backoff time.Duration) repository.DocumentGateway {
	return &firestoreDocumentGateway{
		client:   client,
		identity: identity,
		attempts: attempts,
		backoff:  backoff,
	}
}

// authorize checks that the acting identity owns the document.
func (g *firestoreDocumentGateway) authorize(ctx context.Context, userID string) error {
	uid, err := g.identity.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	if uid != userID {
		return errors.Unauthorized("Document belongs to another user", nil)
	}
	return nil
}

func (g *firestoreDocumentGateway) ReadDocument(ctx context.Context, collection, userID string) (map[string]interface{}, error) {
	if err := g.authorize(ctx, userID); err != nil {
		return nil, err
	}

	var data map[string]interface{}
	err := withRetry(ctx, g.attempts, g.backoff, func() error {
		snap, err := g.client.Collection(collection).Doc(userID).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				data = nil
				return nil
			}
			return classify("Failed to read document", err)
		}
		data = snap.Data()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (g *firestoreDocumentGateway) MergeArrayField(ctx context.Context, collection, userID, field string, element map[string]interface{}) error {
	if err := g.authorize(ctx, userID); err != nil {
		return err
	}

	// Writes outlive the caller's context; aborting a partially
	// applied multi-step workflow is worse than letting it finish.
	ctx = context.WithoutCancel(ctx)

	docRef := g.client.Collection(collection).Doc(userID)
	return withRetry(ctx, g.attempts, g.backoff, func() error {
		snap, err := docRef.Get(ctx)
		if err != nil && status.Code(err) != codes.NotFound {
			return classify("Failed to read document before merge", err)
		}

		if err == nil && snap.Exists() {
			_, err = docRef.Update(ctx, []firestore.Update{
				{Path: field, Value: firestore.ArrayUnion(element)},
			})
		} else {
			_, err = docRef.Set(ctx, map[string]interface{}{
				field: []interface{}{element},
			})
		}
		return classify("Failed to merge array field", err)
	})
}

func (g *firestoreDocumentGateway) ReplaceArrayField(ctx context.Context, collection, userID, field string, elements []map[string]interface{}) error {
	if err := g.authorize(ctx, userID); err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)

	values := make([]interface{}, len(elements))
	for i, el := range elements {
		values[i] = el
	}

	docRef := g.client.Collection(collection).Doc(userID)
	return withRetry(ctx, g.attempts, g.backoff, func() error {
		_, err := docRef.Set(ctx, map[string]interface{}{field: values}, firestore.MergeAll)
		return classify("Failed to replace array field", err)
	})
}

// classify maps Firestore errors onto the application taxonomy so the
// retry layer can tell permanent failures from transient ones.
func classify(message string, err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return errors.NotFound("Document", err)
	case codes.PermissionDenied, codes.Unauthenticated:
		return errors.Unauthorized(message, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return errors.Transient(message, err)
	}
	return errors.Internal(message, err)
}
