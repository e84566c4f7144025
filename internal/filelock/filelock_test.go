package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	lock := New(lockPath)
	if lock == nil {
		t.Fatal("New should not return nil")
	}
	if lock.Path() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.Path())
	}
}

func TestForFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "run.log")

	lock := ForFile(target)
	if lock.Path() != target+".lock" {
		t.Errorf("Expected lock path %s.lock, got %s", target, lock.Path())
	}
}

func TestLockUnlock(t *testing.T) {
	lock := New(filepath.Join(t.TempDir(), "test.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if !lock.Locked() {
		t.Error("Expected lock to report Locked after Lock")
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
	if lock.Locked() {
		t.Error("Expected lock to be released after Unlock")
	}
}

func TestConcurrentLocking(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")
	counterPath := filepath.Join(tmpDir, "counter.txt")
	os.WriteFile(counterPath, []byte("0"), 0644)

	const goroutines = 5
	const iterations = 10

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()

			for j := 0; j < iterations; j++ {
				lock := New(lockPath)
				if err := lock.Lock(); err != nil {
					t.Errorf("Failed to acquire lock: %v", err)
					return
				}

				data, err := os.ReadFile(counterPath)
				if err != nil {
					t.Errorf("Failed to read counter: %v", err)
					lock.Unlock()
					return
				}

				var counter int
				fmt.Sscanf(string(data), "%d", &counter)
				time.Sleep(1 * time.Millisecond)
				counter++

				if err := os.WriteFile(counterPath, []byte(fmt.Sprintf("%d", counter)), 0644); err != nil {
					t.Errorf("Failed to write counter: %v", err)
					lock.Unlock()
					return
				}

				if err := lock.Unlock(); err != nil {
					t.Errorf("Failed to release lock: %v", err)
					return
				}
			}
		}()
	}

	wg.Wait()

	data, err := os.ReadFile(counterPath)
	if err != nil {
		t.Fatalf("Failed to read final counter: %v", err)
	}

	var finalCounter int
	fmt.Sscanf(string(data), "%d", &finalCounter)

	if expected := goroutines * iterations; finalCounter != expected {
		t.Errorf("Expected counter %d, got %d (race condition detected)", expected, finalCounter)
	}
}

func TestTryLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	lock1 := New(lockPath)
	lock2 := New(lockPath)

	acquired, err := lock1.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Fatal("First TryLock should succeed")
	}

	acquired, err = lock2.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if acquired {
		t.Fatal("Second TryLock should fail while first lock is held")
	}

	lock1.Unlock()

	acquired, err = lock2.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Fatal("TryLock should succeed after release")
	}
	lock2.Unlock()
}

func TestTryLockWithin(t *testing.T) {
	t.Run("acquires free lock", func(t *testing.T) {
		lock := New(filepath.Join(t.TempDir(), "test.lock"))

		acquired, err := lock.TryLockWithin(100 * time.Millisecond)
		if err != nil {
			t.Fatalf("TryLockWithin failed: %v", err)
		}
		if !acquired {
			t.Fatal("Expected free lock to be acquired")
		}
		lock.Unlock()
	})

	t.Run("gives up on contended lock", func(t *testing.T) {
		lockPath := filepath.Join(t.TempDir(), "test.lock")
		holder := New(lockPath)
		if err := holder.Lock(); err != nil {
			t.Fatalf("Failed to acquire lock: %v", err)
		}
		defer holder.Unlock()

		start := time.Now()
		acquired, err := New(lockPath).TryLockWithin(50 * time.Millisecond)
		if err != nil {
			t.Fatalf("Expected timeout without error, got %v", err)
		}
		if acquired {
			t.Fatal("Expected contended lock not to be acquired")
		}
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Errorf("TryLockWithin took too long: %v", elapsed)
		}
	})

	t.Run("acquires after release", func(t *testing.T) {
		lockPath := filepath.Join(t.TempDir(), "test.lock")
		holder := New(lockPath)
		holder.Lock()

		go func() {
			time.Sleep(20 * time.Millisecond)
			holder.Unlock()
		}()

		waiter := New(lockPath)
		acquired, err := waiter.TryLockWithin(time.Second)
		if err != nil {
			t.Fatalf("TryLockWithin failed: %v", err)
		}
		if !acquired {
			t.Fatal("Expected lock after holder released it")
		}
		waiter.Unlock()
	})
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consolelog.yaml")
	content := []byte("log_file: run.log\n")

	if err := AtomicWrite(path, content); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("Expected %q, got %q", content, data)
	}
}

func TestAtomicWriteOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consolelog.yaml")

	if err := AtomicWrite(path, []byte("first")); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWrite(path, []byte("second")); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("Expected %q, got %q", "second", data)
	}
}

func TestAtomicWritePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perm.yaml")

	if err := AtomicWrite(path, []byte("x")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0644 {
		t.Errorf("Expected permissions 0644, got %o", perm)
	}
}

func TestAtomicWriteNoTempFileLeftBehind(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "clean.yaml")

	if err := AtomicWrite(path, []byte("content")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "clean.yaml" {
			t.Errorf("Unexpected file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWriteCreateDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "consolelog.yaml")

	if err := AtomicWrite(path, []byte("content")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}
