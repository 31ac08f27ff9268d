package impl_test

import (
	"fmt"
	"sync"
	"testing"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
)

func TestNewFile(t *testing.T) {
	// test variables
	p := "/logs/2020/access.log"
	modTime := int64(1584535538)
	size := int64(16317)

	// test NewFile()
	f := impl.NewFile(p, modTime, size, false)
	if f == nil {
		t.Fatalf("NewFile returns nil")
	}

	// test getter
	if f.Path() != p {
		t.Errorf("%s != %s", f.Path(), p)
	}
	if f.Name() != "access.log" {
		t.Errorf("%s != access.log", f.Name())
	}
	if f.ModTime() != modTime {
		t.Errorf("%d != %d", f.ModTime(), modTime)
	}
	if f.Size() != size {
		t.Errorf("%d != %d", f.Size(), size)
	}
	if f.IsDir() {
		t.Errorf("file is a dir")
	}

	// directories and negative sizes
	if d := impl.NewFile("/logs", 0, 999, true); d.Size() != 0 || !d.IsDir() || d.Name() != "logs" {
		t.Errorf("wrong dir: size=%d, dir=%v, name=%s", d.Size(), d.IsDir(), d.Name())
	}
	if f := impl.NewFile("/x", 0, -5, false); f.Size() != 0 {
		t.Errorf("negative size: %d", f.Size())
	}
	if f := impl.NewFile("", 0, 0, false); f.Name() != "" {
		t.Errorf("name of empty path: %s", f.Name())
	}
}

//--------------------------------------------------------------------------------------------------------------------//

func TestRace_File(t *testing.T) {
	f := impl.NewFile("/dir/Name.file", 12345, 6789, false)

	var wg sync.WaitGroup
	wg.Add(5)
	for n := 0; n < 5; n++ {
		go func() {
			//------------------------------
			for i := 0; i < 1000; i++ {
				s := fmt.Sprintf("%s, %s, %d, %d, %v", f.Path(), f.Name(), f.Size(), f.ModTime(), f.IsDir())
				if s == "" {
					t.Fail()
				}
			}
			//------------------------------
			wg.Done()
		}()
	}
	wg.Wait()
}
