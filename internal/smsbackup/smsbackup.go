// Package smsbackup implements a message source over "SMS Backup & Restore"
// XML exports, the de-facto Android SMS dump format. It lets the engine run
// against a real inbox on a workstation, where no platform message store
// exists.
package smsbackup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/xmlpath.v2"

	"upisubs/mandate-scan/internal/logging"
	"upisubs/mandate-scan/internal/models"
	"upisubs/mandate-scan/internal/scanerror"
)

var (
	smsPath     = xmlpath.MustCompile("/smses/sms")
	smsesPath   = xmlpath.MustCompile("/smses")
	addressPath = xmlpath.MustCompile("@address")
	bodyPath    = xmlpath.MustCompile("@body")
	datePath    = xmlpath.MustCompile("@date")
)

// FileSource reads messages from one backup XML file.
type FileSource struct {
	Path   string
	logger logging.Logger
}

// NewFileSource creates a source over the given backup file.
func NewFileSource(path string, logger logging.Logger) *FileSource {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &FileSource{
		Path:   path,
		logger: logger,
	}
}

// ValidateFormat reports whether the file looks like an SMS backup export.
func ValidateFormat(path string) (bool, error) {
	root, err := loadXMLFile(path)
	if err != nil {
		return false, err
	}
	return smsesPath.Exists(root), nil
}

// ReadMessages parses the backup file into raw messages. The sender filter
// is honored when non-empty, and at most maxCount messages are returned.
// A file that cannot be opened or parsed is reported as an unavailable
// source, which the scanner recovers at its boundary.
func (s *FileSource) ReadMessages(ctx context.Context, maxCount int, senderFilter []string) ([]models.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := loadXMLFile(s.Path)
	if err != nil {
		return nil, &scanerror.SourceUnavailableError{Source: s.Path, Err: err}
	}

	allowed := make(map[string]bool, len(senderFilter))
	for _, sender := range senderFilter {
		allowed[sender] = true
	}

	var messages []models.RawMessage
	index := 0
	iter := smsPath.Iter(root)
	for iter.Next() {
		if maxCount > 0 && len(messages) >= maxCount {
			break
		}
		index++
		node := iter.Node()

		sender, _ := addressPath.String(node)
		if len(allowed) > 0 && !allowed[sender] {
			continue
		}

		body, ok := bodyPath.String(node)
		if !ok || body == "" {
			continue
		}

		messages = append(messages, models.RawMessage{
			ID:        strconv.Itoa(index),
			Sender:    sender,
			Body:      body,
			Timestamp: parseTimestamp(node),
		})
	}

	s.logger.WithFields(
		logging.Field{Key: "file", Value: s.Path},
		logging.Field{Key: "count", Value: len(messages)},
	).Debug("Read messages from SMS backup file")
	return messages, nil
}

// parseTimestamp reads the millisecond-epoch date attribute. A missing or
// malformed date yields the zero time; the message still participates in
// resolution, it just loses every recency comparison.
func parseTimestamp(node *xmlpath.Node) time.Time {
	raw, ok := datePath.String(node)
	if !ok {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

func loadXMLFile(path string) (*xmlpath.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	root, err := xmlpath.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse backup XML: %w", err)
	}
	return root, nil
}
