package domain

import "context"

// TxRunner runs fn inside a storage transaction. The transaction travels in
// the context fn receives, so repository calls made with it participate in
// the same transaction and either all commit or all roll back.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
