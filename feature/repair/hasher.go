package repair

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
)

// fillChunkSize bounds the buffer used to stream synthetic padding, so a
// multi-gigabyte hypothesis costs the same memory as a small one.
const fillChunkSize = 64 * 1024

// Digest carries every checksum computed over one byte stream.
type Digest struct {
	// CRC is the CRC32 (IEEE) checksum, lowercase hex.
	CRC string
	// SHA1 is the SHA-1 digest, lowercase hex.
	SHA1 string
	// MD5 is the MD5 digest, lowercase hex.
	MD5 string
	// Size is the total number of bytes hashed.
	Size int64
}

// multiHasher feeds one stream into all three hash functions at once.
type multiHasher struct {
	crc  hash.Hash32
	sha  hash.Hash
	md   hash.Hash
	size int64
	w    io.Writer
}

func newMultiHasher() *multiHasher {
	h := &multiHasher{
		crc: crc32.NewIEEE(),
		sha: sha1.New(),
		md:  md5.New(),
	}
	h.w = io.MultiWriter(h.crc, h.sha, h.md)
	return h
}

func (h *multiHasher) consume(r io.Reader) error {
	n, err := io.Copy(h.w, r)
	h.size += n
	return err
}

// consumeFill streams count synthetic fill bytes through the hashes in
// bounded chunks.
func (h *multiHasher) consumeFill(fill byte, count int64) {
	if count <= 0 {
		return
	}
	chunk := make([]byte, fillChunkSize)
	if fill != 0 {
		for i := range chunk {
			chunk[i] = fill
		}
	}
	for count > 0 {
		n := int64(len(chunk))
		if count < n {
			n = count
		}
		// Hash writers never fail.
		h.w.Write(chunk[:n])
		h.size += n
		count -= n
	}
}

func (h *multiHasher) digest() Digest {
	return Digest{
		CRC:  fmt.Sprintf("%08x", h.crc.Sum32()),
		SHA1: hex.EncodeToString(h.sha.Sum(nil)),
		MD5:  hex.EncodeToString(h.md.Sum(nil)),
		Size: h.size,
	}
}

// HashReader computes the checksums of a plain byte stream.
func HashReader(r io.Reader) (Digest, error) {
	h := newMultiHasher()
	if err := h.consume(r); err != nil {
		return Digest{}, err
	}
	return h.digest(), nil
}

// HashFile computes the checksums of a file on disk.
func HashFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("open file for hashing: %w", err)
	}
	defer f.Close()
	return HashReader(f)
}

// HashPadded computes the checksums the stream would have if the strategy's
// padding were concatenated around it. The source is never modified; fill
// bytes are generated synthetically.
func HashPadded(r io.Reader, strategy Strategy) (Digest, error) {
	h := newMultiHasher()
	h.consumeFill(strategy.Fill, strategy.Prepend)
	if err := h.consume(r); err != nil {
		return Digest{}, err
	}
	h.consumeFill(strategy.Fill, strategy.Append)
	return h.digest(), nil
}
