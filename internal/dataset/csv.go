package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadMessages reads the messages input file. Expected header:
// id,message,original,genre.
func LoadMessages(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening messages file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading messages header: %w", err)
	}
	if err := checkHeader(header, []string{"id", "message", "original", "genre"}); err != nil {
		return nil, err
	}

	var messages []Message
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading messages line %d: %w", line, err)
		}
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-integer id %q on messages line %d: %w", record[0], line, err)
		}
		messages = append(messages, Message{
			ID:       id,
			Message:  record[1],
			Original: record[2],
			Genre:    record[3],
		})
	}
	return messages, nil
}

// LoadCategoryRecords reads the categories input file. Expected header:
// id,categories.
func LoadCategoryRecords(path string) ([]CategoryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening categories file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading categories header: %w", err)
	}
	if err := checkHeader(header, []string{"id", "categories"}); err != nil {
		return nil, err
	}

	var records []CategoryRecord
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading categories line %d: %w", line, err)
		}
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-integer id %q on categories line %d: %w", record[0], line, err)
		}
		records = append(records, CategoryRecord{ID: id, Categories: record[1]})
	}
	return records, nil
}

func checkHeader(got, want []string) error {
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("unexpected header column %d: want %q, got %q", i, want[i], got[i])
		}
	}
	return nil
}
