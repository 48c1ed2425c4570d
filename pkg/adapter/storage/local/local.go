// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package local stores uploaded blobs on the local disk, serving them
// back by URL. Stored names carry a random UUID prefix, so two uploads
// with equal client-provided names cannot collide.
package local

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage represents a local disk blob storage rooted at a base path.
type Storage struct {
	basePath string
	baseURL  string
}

// New instantiates a storage, creating the base path directory if it
// does not exist yet. The baseURL is the public prefix under which the
// stored files are served.
func New(basePath, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return nil, fmt.Errorf("creating base path: %w", err)
	}
	return &Storage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores the content under a fresh UUID-prefixed name which
// ends with the client-provided file name, returning the URL of the
// stored blob. The contentType is not recorded since the serving layer
// infers it from the file name extension.
func (s *Storage) Upload(
	_ context.Context, content io.Reader, fileName, _ string,
) (string, error) {
	name := uuid.New().String() + "-" + filepath.Base(fileName)
	path := filepath.Join(s.basePath, name)
	f, err := os.OpenFile(
		path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640,
	)
	if err != nil {
		return "", fmt.Errorf("creating blob file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing blob file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing blob file: %w", err)
	}
	return s.baseURL + "/" + url.PathEscape(name), nil
}

// Delete removes the blob which was stored under the given URL. A
// missing blob is not an error, so deletions stay idempotent.
func (s *Storage) Delete(_ context.Context, blobURL string) error {
	name, err := s.fileName(blobURL)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.basePath, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob file: %w", err)
	}
	return nil
}

// fileName extracts the stored file name out of a URL which was
// returned by Upload, rejecting names which escape the base path.
func (s *Storage) fileName(blobURL string) (string, error) {
	raw := blobURL[strings.LastIndex(blobURL, "/")+1:]
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("unescaping blob URL: %w", err)
	}
	if name == "" || name != filepath.Base(name) ||
		!fs.ValidPath(name) {
		return "", fmt.Errorf("unexpected blob URL: %q", blobURL)
	}
	return name, nil
}
