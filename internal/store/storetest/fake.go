// Package storetest provides an in-memory store.Client for tests. It keeps a
// count of round trips per command so tests can assert batching behaviour.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/SiriusScan/mcp-redis/internal/store"
)

// Fake is a map-backed store.Client. It is safe for concurrent use.
type Fake struct {
	mu sync.RWMutex

	strs   map[string]string
	lists  map[string][]string
	sets   map[string]map[string]struct{}
	zsets  map[string][]store.ScoredMember
	hashes map[string]map[string]string
	ttls   map[string]int64
	other  map[string]string // key -> type name for types the fake cannot hold

	// Errors forces a command (by upper-case name, e.g. "SCAN") to fail.
	Errors map[string]error

	// ScanHook replaces the SCAN implementation when set.
	ScanHook func(cursor uint64, pattern string, count int64) (store.ScanPage, error)

	// SScanHook replaces the SSCAN implementation when set.
	SScanHook func(key string, cursor uint64, count int64) (store.ScanPage, error)

	// Slowlog, Clients and InfoText override the SLOWLOG GET, CLIENT LIST
	// and INFO replies.
	Slowlog  []store.SlowlogEntry
	Clients  string
	InfoText string

	calls map[string]int
}

// New creates an empty Fake.
func New() *Fake {
	return &Fake{
		strs:   make(map[string]string),
		lists:  make(map[string][]string),
		sets:   make(map[string]map[string]struct{}),
		zsets:  make(map[string][]store.ScoredMember),
		hashes: make(map[string]map[string]string),
		ttls:   make(map[string]int64),
		other:  make(map[string]string),
		Errors: make(map[string]error),
		calls:  make(map[string]int),
	}
}

var _ store.Client = (*Fake)(nil)

// SetString stores a string key.
func (f *Fake) SetString(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strs[key] = value
}

// RPush appends values to a list key.
func (f *Fake) RPush(key string, values ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[key] = append(f.lists[key], values...)
}

// SAdd adds members to a set key.
func (f *Fake) SAdd(key string, members ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.sets[key]
	if !ok {
		set = make(map[string]struct{})
		f.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
}

// ZAdd adds a scored member to a sorted-set key, keeping score order.
func (f *Fake) ZAdd(key string, score float64, member string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := f.zsets[key]
	for i, m := range members {
		if m.Member == member {
			members = append(members[:i], members[i+1:]...)
			break
		}
	}
	members = append(members, store.ScoredMember{Member: member, Score: score})
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Score == members[j].Score {
			return members[i].Member < members[j].Member
		}
		return members[i].Score < members[j].Score
	})
	f.zsets[key] = members
}

// HSet sets field/value pairs on a hash key.
func (f *Fake) HSet(key string, pairs ...string) {
	if len(pairs)%2 != 0 {
		panic("storetest: HSet needs field/value pairs")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	hash, ok := f.hashes[key]
	if !ok {
		hash = make(map[string]string)
		f.hashes[key] = hash
	}
	for i := 0; i < len(pairs); i += 2 {
		hash[pairs[i]] = pairs[i+1]
	}
}

// SetOther registers key with a type the fake does not model, e.g. "stream".
func (f *Fake) SetOther(key, typeName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.other[key] = typeName
}

// Expire sets the TTL in seconds reported for key.
func (f *Fake) Expire(key string, seconds int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttls[key] = seconds
}

// Del removes key regardless of its type.
func (f *Fake) Del(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteLocked(key)
}

func (f *Fake) deleteLocked(key string) {
	delete(f.strs, key)
	delete(f.lists, key)
	delete(f.sets, key)
	delete(f.zsets, key)
	delete(f.hashes, key)
	delete(f.ttls, key)
	delete(f.other, key)
}

// Calls returns the number of round trips issued for command.
func (f *Fake) Calls(command string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[command]
}

// TotalCalls returns the number of round trips across all commands.
func (f *Fake) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// roundTrip records one call to command and returns its forced error.
// Callers must hold f.mu.
func (f *Fake) roundTrip(command string) error {
	f.calls[command]++
	return f.Errors[command]
}

func (f *Fake) typeLocked(key string) string {
	switch {
	case hasKey(f.strs, key):
		return store.TypeString
	case hasKey(f.lists, key):
		return store.TypeList
	case hasKey(f.sets, key):
		return store.TypeSet
	case hasKey(f.zsets, key):
		return store.TypeZSet
	case hasKey(f.hashes, key):
		return store.TypeHash
	case hasKey(f.other, key):
		return f.other[key]
	default:
		return store.TypeNone
	}
}

func (f *Fake) keysLocked() []string {
	var keys []string
	for k := range f.strs {
		keys = append(keys, k)
	}
	for k := range f.lists {
		keys = append(keys, k)
	}
	for k := range f.sets {
		keys = append(keys, k)
	}
	for k := range f.zsets {
		keys = append(keys, k)
	}
	for k := range f.hashes {
		keys = append(keys, k)
	}
	for k := range f.other {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *Fake) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roundTrip("PING")
}

// Scan walks the sorted keyspace, count keys per page. The cursor is the
// offset of the next unvisited key and returns to 0 once every key was seen.
func (f *Fake) Scan(ctx context.Context, cursor uint64, pattern string, count int64) (store.ScanPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("SCAN"); err != nil {
		return store.ScanPage{}, err
	}
	if f.ScanHook != nil {
		return f.ScanHook(cursor, pattern, count)
	}

	keys := f.keysLocked()
	start, end, next := pageBounds(cursor, count, len(keys))

	page := store.ScanPage{Cursor: next, Keys: []string{}}
	for _, k := range keys[start:end] {
		if Match(pattern, k) {
			page.Keys = append(page.Keys, k)
		}
	}
	return page, nil
}

func (f *Fake) Type(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("TYPE"); err != nil {
		return "", err
	}
	return f.typeLocked(key), nil
}

// Types answers every key in one recorded round trip, like a pipeline.
func (f *Fake) Types(ctx context.Context, keys []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("PIPELINE"); err != nil {
		return nil, err
	}
	types := make([]string, len(keys))
	for i, k := range keys {
		types[i] = f.typeLocked(k)
	}
	return types, nil
}

func (f *Fake) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("GET"); err != nil {
		return "", err
	}
	v, ok := f.strs[key]
	if !ok {
		return "", fmt.Errorf("storetest: GET %s: nil", key)
	}
	return v, nil
}

func (f *Fake) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("LRANGE"); err != nil {
		return nil, err
	}
	list := f.lists[key]
	lo, hi, ok := normalizeRange(start, stop, len(list))
	if !ok {
		return []string{}, nil
	}
	return append([]string{}, list[lo:hi+1]...), nil
}

func (f *Fake) SMembers(ctx context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("SMEMBERS"); err != nil {
		return nil, err
	}
	return f.membersLocked(key), nil
}

// SScan pages through the sorted members of a set the same way Scan walks
// the keyspace.
func (f *Fake) SScan(ctx context.Context, key string, cursor uint64, count int64) (store.ScanPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("SSCAN"); err != nil {
		return store.ScanPage{}, err
	}
	if f.SScanHook != nil {
		return f.SScanHook(key, cursor, count)
	}

	members := f.membersLocked(key)
	start, end, next := pageBounds(cursor, count, len(members))
	return store.ScanPage{Cursor: next, Keys: append([]string{}, members[start:end]...)}, nil
}

func (f *Fake) membersLocked(key string) []string {
	members := make([]string, 0, len(f.sets[key]))
	for m := range f.sets[key] {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}

func (f *Fake) ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]store.ScoredMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("ZRANGE"); err != nil {
		return nil, err
	}
	members := f.zsets[key]
	lo, hi, ok := normalizeRange(start, stop, len(members))
	if !ok {
		return []store.ScoredMember{}, nil
	}
	return append([]store.ScoredMember{}, members[lo:hi+1]...), nil
}

func (f *Fake) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("HGETALL"); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(f.hashes[key]))
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (f *Fake) HMGet(ctx context.Context, key string, fields []string) ([]store.FieldValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("HMGET"); err != nil {
		return nil, err
	}
	values := make([]store.FieldValue, len(fields))
	for i, field := range fields {
		if v, ok := f.hashes[key][field]; ok {
			values[i] = store.FieldValue{Value: v, Found: true}
		}
	}
	return values, nil
}

func (f *Fake) TTL(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("TTL"); err != nil {
		return 0, err
	}
	if f.typeLocked(key) == store.TypeNone {
		return -2, nil
	}
	if ttl, ok := f.ttls[key]; ok {
		return ttl, nil
	}
	return -1, nil
}

func (f *Fake) ObjectEncoding(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("OBJECT"); err != nil {
		return "", err
	}
	switch f.typeLocked(key) {
	case store.TypeString:
		return "embstr", nil
	case store.TypeList:
		return "listpack", nil
	case store.TypeSet:
		return "hashtable", nil
	case store.TypeZSet, store.TypeHash:
		return "listpack", nil
	case store.TypeNone:
		return "", fmt.Errorf("storetest: OBJECT ENCODING %s: nil", key)
	default:
		return "stream", nil
	}
}

func (f *Fake) MemoryUsage(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("MEMORY"); err != nil {
		return 0, err
	}
	if f.typeLocked(key) == store.TypeNone {
		return 0, fmt.Errorf("storetest: MEMORY USAGE %s: nil", key)
	}
	return int64(48 + len(key)), nil
}

func (f *Fake) DBSize(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("DBSIZE"); err != nil {
		return 0, err
	}
	return int64(len(f.keysLocked())), nil
}

func (f *Fake) Info(ctx context.Context, section string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("INFO"); err != nil {
		return "", err
	}
	if f.InfoText != "" {
		return f.InfoText, nil
	}
	if section == "" {
		section = "server"
	}
	return fmt.Sprintf("# %s\r\nredis_version:7.2.4\r\n", strings.ToUpper(section[:1])+section[1:]), nil
}

func (f *Fake) SlowlogGet(ctx context.Context, count int64) ([]store.SlowlogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("SLOWLOG"); err != nil {
		return nil, err
	}
	entries := f.Slowlog
	if count >= 0 && int(count) < len(entries) {
		entries = entries[:count]
	}
	return append([]store.SlowlogEntry{}, entries...), nil
}

func (f *Fake) ClientList(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roundTrip("CLIENT"); err != nil {
		return "", err
	}
	if f.Clients != "" {
		return f.Clients, nil
	}
	return "id=3 addr=127.0.0.1:52555 laddr=127.0.0.1:6379 fd=8 name= age=10 idle=0 db=0 cmd=client|list\n", nil
}

func (f *Fake) Close() error {
	return nil
}

// pageBounds slices n items into a page of count starting at the offset
// cursor. next is 0 once the page reaches the end.
func pageBounds(cursor uint64, count int64, n int) (start, end int, next uint64) {
	start = n
	if cursor < uint64(n) {
		start = int(cursor)
	}
	end = n
	if count > 0 && int64(n-start) > count {
		end = start + int(count)
	}
	if end < n {
		next = uint64(end)
	}
	return start, end, next
}

// normalizeRange converts Redis-style inclusive indexes (negative counts from
// the end) into slice bounds. ok is false when the range is empty.
func normalizeRange(start, stop int64, n int) (lo, hi int, ok bool) {
	size := int64(n)
	if start < 0 {
		start += size
	}
	if stop < 0 {
		stop += size
	}
	if start < 0 {
		start = 0
	}
	if stop >= size {
		stop = size - 1
	}
	if start > stop || start >= size {
		return 0, 0, false
	}
	return int(start), int(stop), true
}

func hasKey[V any](m map[string]V, key string) bool {
	_, ok := m[key]
	return ok
}
