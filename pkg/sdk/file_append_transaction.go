package sdk

import (
	"context"

	"google.golang.org/protobuf/proto"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// FileAppendTransaction appends contents to an existing file. Large contents
// are split into ordered chunks like topic message submissions; the file
// service needs no chunk metadata because appends are inherently sequential.
type FileAppendTransaction struct {
	fileID   *hedera.FileID
	contents []byte
	limits   chunkLimits
}

// NewFileAppendTransaction creates an empty append with the default chunk
// size and budget.
func NewFileAppendTransaction() *FileAppendTransaction {
	return &FileAppendTransaction{limits: defaultChunkLimits()}
}

// SetFileID sets the file to append to. Required.
func (t *FileAppendTransaction) SetFileID(id hedera.FileID) *FileAppendTransaction {
	t.fileID = &id
	return t
}

// SetContents sets the bytes to append. Required.
func (t *FileAppendTransaction) SetContents(contents []byte) *FileAppendTransaction {
	t.contents = contents
	return t
}

// SetChunkSize overrides the per-chunk payload size.
func (t *FileAppendTransaction) SetChunkSize(size int) *FileAppendTransaction {
	t.limits.chunkSize = size
	return t
}

// SetMaxChunks overrides the chunk budget.
func (t *FileAppendTransaction) SetMaxChunks(n int) *FileAppendTransaction {
	t.limits.maxChunks = n
	return t
}

// RequiredChunks reports how many transactions the current contents will
// produce under the current chunk size.
func (t *FileAppendTransaction) RequiredChunks() int {
	return t.limits.requiredChunks(len(t.contents))
}

// Execute appends every chunk in order, one response per chunk.
func (t *FileAppendTransaction) Execute(ctx context.Context, c *client.Client) ([]*TransactionResponse, error) {
	if t.fileID == nil {
		return nil, hedera.ErrFieldRequired("fileID")
	}
	if len(t.contents) == 0 {
		return nil, hedera.ErrFieldRequired("contents")
	}
	fileID := *t.fileID
	return executeChunks(ctx, c, t.contents, t.limits, func(chunk []byte, index, total int, initial hedera.TransactionID) bodyBuilder {
		return &fileAppendChunk{fileID: fileID, payload: chunk}
	})
}

// fileAppendChunk is the body builder for one chunk of an append.
type fileAppendChunk struct {
	fileID  hedera.FileID
	payload []byte
}

func (fc *fileAppendChunk) data() (string, proto.Message, error) {
	body := hapi.NewMessage("FileAppendTransactionBody")
	hapi.SetMessage(body, "fileID", hapi.FileIDMessage(fc.fileID))
	hapi.SetBytes(body, "contents", fc.payload)
	return "fileAppend", body, nil
}

func (fc *fileAppendChunk) methodName() string { return "appendContent" }
