package reconcile

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest возвращает отпечаток конфликта: BLAKE2b-256 от id и обоих значений.
// Клиент сохраняет его вместе с отложенным конфликтом и сравнивает перед
// отправкой решения, чтобы не применить выбор к уже изменившемуся расхождению.
func Digest(id, localValue, remoteValue string) string {
	h, _ := blake2b.New256(nil) // без ключа ошибки быть не может

	// Префикс длины исключает коллизии вида ("ab","c") / ("a","bc")
	var size [8]byte
	for _, part := range []string{id, localValue, remoteValue} {
		binary.BigEndian.PutUint64(size[:], uint64(len(part)))
		_, _ = h.Write(size[:])
		_, _ = h.Write([]byte(part))
	}

	return hex.EncodeToString(h.Sum(nil))
}
