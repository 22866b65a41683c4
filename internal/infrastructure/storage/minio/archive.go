package minio

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

const (
	structurePrefix      = "structures/"
	structureContentType = "chemical/x-pdb"
)

// StructureArchive keeps every downloaded structure as
// "structures/{ID}.pdb" in the configured bucket.
type StructureArchive struct {
	client *MinIOClient
	logger logging.Logger
}

func NewStructureArchive(client *MinIOClient, log logging.Logger) *StructureArchive {
	return &StructureArchive{client: client, logger: log}
}

// ObjectKey returns the object name holding pdbID.
func ObjectKey(pdbID string) string {
	return structurePrefix + pdbID + ".pdb"
}

func (a *StructureArchive) Get(ctx context.Context, pdbID string) ([]byte, error) {
	if a.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	body, err := a.client.GetClient().OpenObject(ctx, a.client.Bucket(), ObjectKey(pdbID))
	if err != nil {
		if isNoSuchKey(err) {
			return nil, errors.NotFound("structure not archived").WithDetail(pdbID)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "download failed")
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "download failed")
	}
	return data, nil
}

func (a *StructureArchive) Put(ctx context.Context, pdbID string, data []byte) error {
	if a.client.isClosed() {
		return ErrMinIOClientClosed
	}
	opts := minio.PutObjectOptions{
		ContentType:  structureContentType,
		UserMetadata: map[string]string{"pdb-id": pdbID},
	}
	info, err := a.client.GetClient().PutObject(ctx, a.client.Bucket(), ObjectKey(pdbID), bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "upload failed")
	}
	a.logger.Debug("structure archived",
		logging.String(logging.FieldPDBID, pdbID),
		logging.Int64("size", info.Size),
		logging.String("etag", info.ETag))
	return nil
}

//Personal.AI order the ending
