package iso9660

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Descriptors is what Read extracts from the head of an image
type Descriptors struct {
	Primary       *PrimaryVolumeDescriptor
	Supplementary *SupplementaryVolumeDescriptor
}

// Reader pulls volume descriptors from a stream positioned at the start of
// an image. Short reads are resumed; ctx is checked before every read.
type Reader struct {
	r      io.Reader
	offset int64 // bytes consumed so far
}

// NewReader wraps r
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the number of bytes consumed from the stream
func (r *Reader) Offset() int64 {
	return r.offset
}

// Read is shorthand for NewReader(src).ReadDescriptors(ctx)
func Read(ctx context.Context, src io.Reader) (*Descriptors, error) {
	return NewReader(src).ReadDescriptors(ctx)
}

// ReadDescriptors skips the system area, then reads and validates the primary
// and supplementary descriptors
func (r *Reader) ReadDescriptors(ctx context.Context) (*Descriptors, error) {
	if err := r.skip(ctx, SystemAreaSize); err != nil {
		return nil, classify(err, ErrNoDescriptors, "failed to skip system area")
	}

	buf := make([]byte, DescriptorSize)
	if err := r.readFull(ctx, buf); err != nil {
		return nil, classify(err, ErrNoPrimaryVolumeDescriptor, "failed to read primary volume descriptor")
	}
	pvd, err := DecodePrimary(buf)
	if err != nil {
		return nil, err
	}
	if pvd.Volume == "" {
		return nil, ErrInsufficientMetadata
	}

	if err := r.readFull(ctx, buf); err != nil {
		return nil, classify(err, ErrNoSupplementaryVolumeDescriptor, "failed to read supplementary volume descriptor")
	}
	svd, err := DecodeSupplementary(buf)
	if err != nil {
		return nil, err
	}
	if !svd.Bootable() {
		return nil, ErrNotBootable
	}

	return &Descriptors{Primary: pvd, Supplementary: svd}, nil
}

// skip advances n bytes, seeking when the source allows it
func (r *Reader) skip(ctx context.Context, n int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s, ok := r.r.(io.Seeker); ok {
		cur, err := s.Seek(0, io.SeekCurrent)
		if err == nil {
			end, err := s.Seek(0, io.SeekEnd)
			if err != nil {
				return err
			}
			if end-cur < n {
				r.offset += end - cur
				return io.ErrUnexpectedEOF
			}
			if _, err := s.Seek(cur+n, io.SeekStart); err != nil {
				return err
			}
			r.offset += n
			return nil
		}
	}

	buf := make([]byte, DescriptorSize)
	for n > 0 {
		chunk := buf
		if int64(len(chunk)) > n {
			chunk = chunk[:n]
		}
		if err := r.readFull(ctx, chunk); err != nil {
			return err
		}
		n -= int64(len(chunk))
	}
	return nil
}

// readFull fills buf, resuming short reads until it is full or the stream ends
func (r *Reader) readFull(ctx context.Context, buf []byte) error {
	filled := 0
	for filled < len(buf) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.r.Read(buf[filled:])
		filled += n
		r.offset += int64(n)
		if err == io.EOF {
			if filled < len(buf) {
				return io.ErrUnexpectedEOF
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// classify maps truncation onto the format sentinel and prefixes everything
// else (I/O failures, cancellation) with context
func classify(err, truncated error, prefix string) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: stream truncated", truncated)
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
