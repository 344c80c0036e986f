package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testRecords() []Record {
	return []Record{
		{Name: "w1", PublicKey: "Addr1", PrivateKey: "Key1"},
		{Name: "w2", PublicKey: "Addr2", PrivateKey: "Key2"},
		{Name: "w3", PublicKey: "Addr3", PrivateKey: "Key3"},
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope.json"), nil)
	if s.Len() != 0 {
		t.Errorf("missing file: got %d records, want 0", s.Len())
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := Open(path, nil)
	if s.Len() != 0 {
		t.Errorf("corrupt file: got %d records, want 0", s.Len())
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")

	s := Open(path, nil)
	s.Append(testRecords()...)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := Open(path, nil)
	if !reflect.DeepEqual(reloaded.Records, s.Records) {
		t.Errorf("reloaded records differ:\n got %v\nwant %v", reloaded.Records, s.Records)
	}

	// A second load with no mutation in between is identical.
	again := Open(path, nil)
	if !reflect.DeepEqual(again.Records, reloaded.Records) {
		t.Errorf("repeated load differs: %v vs %v", again.Records, reloaded.Records)
	}
}

func TestAppendBumpsDuplicateNames(t *testing.T) {
	s := &Store{}
	s.Append(Record{Name: "sub", PublicKey: "A"})
	s.Append(Record{Name: "sub", PublicKey: "B"})
	s.Append(Record{Name: "sub", PublicKey: "C"})

	names := []string{s.Records[0].Name, s.Records[1].Name, s.Records[2].Name}
	want := []string{"sub", "sub-2", "sub-3"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestGetIsOneBased(t *testing.T) {
	s := &Store{Records: testRecords()}

	if _, ok := s.Get(0); ok {
		t.Error("Get(0) should fail; positions are 1-based")
	}
	if rec, ok := s.Get(2); !ok || rec.Name != "w2" {
		t.Errorf("Get(2) = %v, %v", rec, ok)
	}
	if _, ok := s.Get(7); ok {
		t.Error("Get past the end should fail")
	}
}

func TestMergeSkipOnNameCollision(t *testing.T) {
	existing := testRecords()
	incoming := []Record{{Name: "w2", PublicKey: "NewAddr", PrivateKey: "NewKey"}}

	merged, stats := Merge(existing, incoming, false)

	if stats.Imported != 0 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 0 imported / 1 skipped", stats)
	}
	if merged[1].PublicKey != "Addr2" {
		t.Errorf("existing record was modified: %v", merged[1])
	}
	if len(merged) != 3 {
		t.Errorf("merged has %d records, want 3", len(merged))
	}
}

func TestMergeOverwriteOnNameCollision(t *testing.T) {
	existing := testRecords()
	incoming := []Record{{Name: "w2", PublicKey: "NewAddr", PrivateKey: "NewKey"}}

	merged, stats := Merge(existing, incoming, true)

	if stats.Imported != 1 || stats.Skipped != 0 {
		t.Errorf("stats = %+v, want 1 imported / 0 skipped", stats)
	}
	if merged[1].PublicKey != "NewAddr" {
		t.Errorf("record not overwritten: %v", merged[1])
	}
}

func TestMergeAddressCollision(t *testing.T) {
	existing := testRecords()
	incoming := []Record{{Name: "renamed", PublicKey: "Addr3", PrivateKey: "Key3"}}

	_, stats := Merge(existing, incoming, false)
	if stats.Skipped != 1 {
		t.Errorf("address collision not detected: %+v", stats)
	}

	merged, stats := Merge(existing, incoming, true)
	if stats.Imported != 1 {
		t.Errorf("overwrite by address failed: %+v", stats)
	}
	if merged[2].Name != "renamed" {
		t.Errorf("record not overwritten: %v", merged[2])
	}
}

func TestMergeAppendsNew(t *testing.T) {
	existing := testRecords()
	incoming := []Record{
		{Name: "w4", PublicKey: "Addr4", PrivateKey: "Key4"},
		{Name: "w2", PublicKey: "Addr2x", PrivateKey: "x"}, // name dup
		{Name: "w5", PublicKey: "Addr5", PrivateKey: "Key5"},
	}

	merged, stats := Merge(existing, incoming, false)
	if stats.Imported != 2 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 2 imported / 1 skipped", stats)
	}
	if len(merged) != 5 {
		t.Errorf("merged has %d records, want 5", len(merged))
	}
	if merged[3].Name != "w4" || merged[4].Name != "w5" {
		t.Errorf("append order wrong: %v", merged[3:])
	}
	if want := []string{"w2"}; !reflect.DeepEqual(stats.SkippedNames, want) {
		t.Errorf("SkippedNames = %v, want %v", stats.SkippedNames, want)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := testRecords()
	incoming := []Record{{Name: "w4", PublicKey: "Addr4"}}

	Merge(existing, incoming, true)
	if len(existing) != 3 {
		t.Errorf("existing mutated: %v", existing)
	}
}
