package dump

import (
	"io"
	"os"

	"github.com/DataDog/zstd"
)

// OpenSink opens path for the merged dump. If compress is set, writes are
// zstd-compressed, so an operator capturing a very chatty child can keep
// the on-disk transcript small without superlog taking on a rotation or
// retention policy of its own. The returned closer must be closed after
// Dump to flush the compressor's trailer.
func OpenSink(path string, compress bool) (io.Writer, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, err
	}
	if !compress {
		return f, f, nil
	}

	zw := zstd.NewWriterLevel(f, zstd.DefaultCompression)
	return zw, multiCloser{zw, f}, nil
}

type multiCloser struct {
	first  io.Closer
	second io.Closer
}

func (m multiCloser) Close() error {
	if err := m.first.Close(); err != nil {
		m.second.Close()
		return err
	}
	return m.second.Close()
}
