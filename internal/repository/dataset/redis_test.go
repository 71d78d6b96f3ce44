package dataset

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/careercompass/internal/config"
	"github.com/kailas-cloud/careercompass/internal/domain"
)

type fakeReader struct {
	lists    map[string][]string
	hashes   map[string]map[string]string
	listErr  error
	multiErr error
}

func (f *fakeReader) LRange(_ context.Context, key string, _, _ int64) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[key], nil
}

func (f *fakeReader) HGetAll(_ context.Context, key string) (map[string]string, error) {
	return f.hashes[key], nil
}

func (f *fakeReader) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	if f.multiErr != nil {
		return nil, f.multiErr
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = f.hashes[k]
	}
	return out, nil
}

func TestRedisSource_Read(t *testing.T) {
	store := &fakeReader{
		lists: map[string][]string{"cc:records": {"cc:career:2", "cc:career:1"}},
		hashes: map[string]map[string]string{
			"cc:career:1": {"role": "Chef", "description": "cooks"},
			"cc:career:2": {"role": "Nurse", "required_skills": "care"},
		},
	}

	table, err := NewRedisSource(store, "cc:").Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(table.Rows) != 2 || table.Rows[0]["role"] != "Nurse" {
		t.Fatalf("rows not in list order: %v", table.Rows)
	}
	want := []string{"required_skills", "role", "description"}
	if !slices.Equal(table.Columns, want) {
		t.Errorf("columns = %v, want %v", table.Columns, want)
	}
}

func TestRedisSource_Errors(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeReader
	}{
		{"empty list", &fakeReader{}},
		{"list error", &fakeReader{listErr: errors.New("conn refused")}},
		{"pipeline error", &fakeReader{
			lists:    map[string][]string{"cc:records": {"a"}},
			multiErr: errors.New("conn reset"),
		}},
		{"dangling key", &fakeReader{
			lists:  map[string][]string{"cc:records": {"a"}},
			hashes: map[string]map[string]string{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRedisSource(tt.store, "cc:").Read(context.Background())
			if !errors.Is(err, domain.ErrDataAccess) {
				t.Fatalf("expected ErrDataAccess, got %v", err)
			}
		})
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DatasetConfig
		store   Reader
		want    string
		wantErr bool
	}{
		{"csv", config.DatasetConfig{Driver: config.DriverCSV, Path: "a.csv"}, nil, "a.csv", false},
		{"parquet", config.DatasetConfig{Driver: config.DriverParquet, Path: "a.parquet"}, nil, "a.parquet", false},
		{"redis", config.DatasetConfig{Driver: config.DriverRedis, Redis: config.RedisConfig{KeyPrefix: "cc:"}},
			&fakeReader{}, "redis:cc:records", false},
		{"redis without store", config.DatasetConfig{Driver: config.DriverRedis}, nil, "", true},
		{"unknown", config.DatasetConfig{Driver: "sqlite"}, nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.cfg, tt.store)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSource: %v", err)
			}
			if src.Name() != tt.want {
				t.Errorf("name = %q, want %q", src.Name(), tt.want)
			}
		})
	}
}
