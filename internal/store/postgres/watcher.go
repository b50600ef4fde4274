package postgres

import (
	"context"
	"log"
	"time"

	"github.com/kiwari-pos/kds/internal/store"
)

const notifyChannel = "kds_changed"

// Watch holds a dedicated connection on LISTEN kds_changed and invokes
// onChange with the table name carried in each notification payload. The
// connection is re-acquired with a short backoff if it drops; Watch returns
// only when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, onChange func(store.Change)) error {
	for {
		if err := s.listen(ctx, onChange); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("ERROR: store watcher: %v, reconnecting", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (s *Store) listen(ctx context.Context, onChange func(store.Change)) error {
	poolConn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	// The LISTEN subscription must not ride back into the pool on this
	// connection, so take it out of the pool and close it outright when
	// the loop exits.
	conn := poolConn.Hijack()
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		switch c := store.Change(n.Payload); c {
		case store.ChangeOrders, store.ChangeMasters, store.ChangeTimings:
			onChange(c)
		default:
			log.Printf("store watcher: ignoring unknown change payload %q", n.Payload)
		}
	}
}
