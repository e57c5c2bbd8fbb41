package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store persisting documents as JSON values with a
// set index per collection.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) PutItem(ctx context.Context, collection string, item *Item) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding item: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, documentKey(collection, item.ID), raw, 0)
	pipe.SAdd(ctx, indexKey(collection), item.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisStore) GetItem(ctx context.Context, collection, id string) (*Item, error) {
	raw, err := r.client.Get(ctx, documentKey(collection, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decoding item %s/%s: %w", collection, id, err)
	}
	return &item, nil
}

func (r *redisStore) ListItems(ctx context.Context, collection string) ([]Item, error) {
	ids, err := r.client.SMembers(ctx, indexKey(collection)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		item, err := r.GetItem(ctx, collection, id)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (r *redisStore) DeleteItem(ctx context.Context, collection, id string) error {
	n, err := r.client.SRem(ctx, indexKey(collection), id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return r.client.Del(ctx, documentKey(collection, id)).Err()
}

func (r *redisStore) AddSubmission(ctx context.Context, submission *Submission) error {
	raw, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}
	// Newest first; submissions are append-only.
	return r.client.LPush(ctx, submissionsKey(), raw).Err()
}

func (r *redisStore) ListSubmissions(ctx context.Context) ([]Submission, error) {
	raws, err := r.client.LRange(ctx, submissionsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	submissions := make([]Submission, 0, len(raws))
	for _, raw := range raws {
		var s Submission
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("decoding submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, nil
}

func (r *redisStore) PutUser(ctx context.Context, user *User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), raw, 0)
	pipe.SAdd(ctx, usersIndexKey(), user.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisStore) GetUser(ctx context.Context, id string) (*User, error) {
	raw, err := r.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", id, err)
	}
	return &user, nil
}

func (r *redisStore) ListUsers(ctx context.Context) ([]User, error) {
	ids, err := r.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	users := make([]User, 0, len(ids))
	for _, id := range ids {
		user, err := r.GetUser(ctx, id)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func documentKey(collection, id string) string {
	return fmt.Sprintf("content:%s:%s", collection, id)
}

func indexKey(collection string) string {
	return fmt.Sprintf("content:%s:ids", collection)
}

func submissionsKey() string {
	return "contact:submissions"
}

func userKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func usersIndexKey() string {
	return "user:ids"
}
