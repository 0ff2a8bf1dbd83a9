package cache

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"shipping-estimator/internal/domain"
)

// passthrough lets []string arguments reach sqlmock the way pgx receives them.
type passthrough struct{}

func (passthrough) ConvertValue(v any) (driver.Value, error) { return v, nil }

func TestSQLGeocodeCacheGetMany(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passthrough{}))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"query", "lat", "lon"}).
		AddRow("nairobi, kenya", -1.2833, 36.8167)

	mock.ExpectQuery(`SELECT query, lat, lon FROM geocode_cache WHERE query = ANY\(\$1::text\[\]\)`).
		WithArgs([]string{"nairobi, kenya", "mombasa, kenya"}).
		WillReturnRows(rows)

	c := NewSQLGeocodeCache(db)
	got, err := c.GetMany(context.Background(), []string{"nairobi, kenya", "mombasa, kenya", "nairobi, kenya"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got["nairobi, kenya"].Lon != 36.8167 {
		t.Errorf("unexpected result: %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSQLGeocodeCacheGetManyQueryError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passthrough{}))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT query, lat, lon`).WillReturnError(errors.New("connection reset"))

	c := NewSQLGeocodeCache(db)
	if _, err := c.GetMany(context.Background(), []string{"nairobi, kenya"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSQLGeocodeCacheGetManyEmptyInputSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	c := NewSQLGeocodeCache(db)
	got, err := c.GetMany(context.Background(), []string{" ", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSQLGeocodeCachePutMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO geocode_cache \(query, lat, lon\) VALUES \(\$1, \$2, \$3\), \(\$4, \$5, \$6\) ON CONFLICT`).
		WithArgs("kisumu, kenya", -0.0917, 34.768, "nyeri, kenya", -0.4201, 36.9476).
		WillReturnResult(sqlmock.NewResult(0, 2))

	c := NewSQLGeocodeCache(db)
	err = c.PutMany(context.Background(), map[string]domain.Coordinates{
		"nyeri, kenya":  {Lat: -0.4201, Lon: 36.9476},
		"kisumu, kenya": {Lat: -0.0917, Lon: 34.768},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSQLGeocodeCachePutManyExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO geocode_cache`).
		WithArgs("kisumu, kenya", -0.0917, 34.768).
		WillReturnError(sqlmock.ErrCancelled)

	c := NewSQLGeocodeCache(db)
	err = c.PutMany(context.Background(), map[string]domain.Coordinates{
		"kisumu, kenya": {Lat: -0.0917, Lon: 34.768},
	})
	if !errors.Is(err, sqlmock.ErrCancelled) {
		t.Fatalf("expected cancelled error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSQLGeocodeCachePutManyRejectsEmptyKeyWithoutQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	c := NewSQLGeocodeCache(db)
	if err := c.PutMany(context.Background(), map[string]domain.Coordinates{"": {}}); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
