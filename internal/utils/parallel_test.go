package utils

import (
	"errors"
	"testing"
)

func TestRunParallelTasks(t *testing.T) {
	boom := errors.New("boom")
	tasks := []ParallelTask{
		func() (interface{}, error) { return 1, nil },
		func() (interface{}, error) { return nil, boom },
		func() (interface{}, error) { return "three", nil },
	}

	results, errs := RunParallelTasks(tasks)
	if len(results) != 3 || len(errs) != 3 {
		t.Fatalf("got %d results, %d errors, want 3/3", len(results), len(errs))
	}
	if results[0] != 1 || results[2] != "three" {
		t.Errorf("results out of order: %v", results)
	}
	if errs[1] != boom {
		t.Errorf("error not kept at its task index: %v", errs)
	}
	if errs[0] != nil || errs[2] != nil {
		t.Errorf("unexpected errors: %v", errs)
	}
}
