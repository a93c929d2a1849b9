package encryption

import (
	"bytes"
	"testing"

	"pw-go/internal/config"
	"pw-go/internal/pw"
)

func TestEncryptors_RoundTrip(t *testing.T) {
	t.Parallel()

	encryptors := map[string]pw.Encryptor{
		"xchacha": NewXChaChaEncryptor(),
		"age":     NewAgeEncryptor(),
		"test":    NewTestEncryptor(),
	}
	inputs := []struct {
		name  string
		input []byte
	}{
		{name: "password", input: []byte("aB3$xyz!Qw12")},
		{name: "empty", input: []byte{}},
		{name: "unicode", input: []byte("pässwörd✓")},
		{name: "large data", input: bytes.Repeat([]byte("abcdef"), 10000)},
	}

	for encName, e := range encryptors {
		e := e
		for _, tt := range inputs {
			tt := tt
			t.Run(encName+"/"+tt.name, func(t *testing.T) {
				t.Parallel()

				key, err := e.GenerateKey()
				if err != nil {
					t.Fatalf("GenerateKey() error = %v", err)
				}

				var encrypted bytes.Buffer
				if err := e.Encrypt(key, bytes.NewReader(tt.input), &encrypted); err != nil {
					t.Fatalf("Encrypt() error = %v", err)
				}

				if bytes.Equal(encrypted.Bytes(), tt.input) {
					t.Error("encrypted output is identical to plaintext")
				}

				var decrypted bytes.Buffer
				if err := e.Decrypt(key, bytes.NewReader(encrypted.Bytes()), &decrypted); err != nil {
					t.Fatalf("Decrypt() error = %v", err)
				}

				if !bytes.Equal(decrypted.Bytes(), tt.input) {
					t.Errorf("round-trip failed: got %d bytes, want %d bytes", decrypted.Len(), len(tt.input))
				}
			})
		}
	}
}

func TestEncryptors_WrongKey(t *testing.T) {
	t.Parallel()

	for name, e := range map[string]pw.Encryptor{
		"xchacha": NewXChaChaEncryptor(),
		"age":     NewAgeEncryptor(),
	} {
		e := e
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			key, err := e.GenerateKey()
			if err != nil {
				t.Fatalf("GenerateKey() error = %v", err)
			}
			other, err := e.GenerateKey()
			if err != nil {
				t.Fatalf("GenerateKey() error = %v", err)
			}

			var encrypted bytes.Buffer
			if err := e.Encrypt(key, bytes.NewReader([]byte("secret")), &encrypted); err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}

			var out bytes.Buffer
			if err := e.Decrypt(other, bytes.NewReader(encrypted.Bytes()), &out); err == nil {
				t.Error("Decrypt() with another key should return error")
			}
		})
	}
}

func TestXChaChaEncryptor(t *testing.T) {
	t.Parallel()
	e := NewXChaChaEncryptor()

	t.Run("key is 32 bytes", func(t *testing.T) {
		key, err := e.GenerateKey()
		if err != nil {
			t.Fatalf("GenerateKey() error = %v", err)
		}
		if len(key) != 32 {
			t.Errorf("len(key) = %d, want 32", len(key))
		}
	})

	t.Run("nonce differs per record", func(t *testing.T) {
		key, _ := e.GenerateKey()
		var a, b bytes.Buffer
		if err := e.Encrypt(key, bytes.NewReader([]byte("same")), &a); err != nil {
			t.Fatal(err)
		}
		if err := e.Encrypt(key, bytes.NewReader([]byte("same")), &b); err != nil {
			t.Fatal(err)
		}
		if bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Error("two encryptions of the same plaintext are identical")
		}
	})

	t.Run("rejects short key", func(t *testing.T) {
		var out bytes.Buffer
		if err := e.Encrypt(pw.EncryptionKey("short"), bytes.NewReader([]byte("x")), &out); err == nil {
			t.Error("Encrypt() with short key should return error")
		}
	})

	t.Run("rejects truncated ciphertext", func(t *testing.T) {
		key, _ := e.GenerateKey()
		var out bytes.Buffer
		if err := e.Decrypt(key, bytes.NewReader([]byte("tiny")), &out); err == nil {
			t.Error("Decrypt() with truncated ciphertext should return error")
		}
	})

	t.Run("rejects tampered ciphertext", func(t *testing.T) {
		key, _ := e.GenerateKey()
		var enc bytes.Buffer
		if err := e.Encrypt(key, bytes.NewReader([]byte("secret")), &enc); err != nil {
			t.Fatal(err)
		}
		data := enc.Bytes()
		data[len(data)-1] ^= 0xff

		var out bytes.Buffer
		if err := e.Decrypt(key, bytes.NewReader(data), &out); err == nil {
			t.Error("Decrypt() with tampered ciphertext should return error")
		}
	})
}

func TestAgeEncryptor_InvalidIdentity(t *testing.T) {
	t.Parallel()
	e := NewAgeEncryptor()

	var out bytes.Buffer
	if err := e.Encrypt(pw.EncryptionKey("not-an-identity"), bytes.NewReader([]byte("x")), &out); err == nil {
		t.Error("Encrypt() with invalid identity should return error")
	}
}

func TestTestEncryptor(t *testing.T) {
	t.Parallel()
	e := NewTestEncryptor()

	t.Run("deterministic", func(t *testing.T) {
		var enc1, enc2 bytes.Buffer
		if err := e.Encrypt(nil, bytes.NewReader([]byte("same")), &enc1); err != nil {
			t.Fatal(err)
		}
		if err := e.Encrypt(nil, bytes.NewReader([]byte("same")), &enc2); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(enc1.Bytes(), enc2.Bytes()) {
			t.Error("same input produced different encrypted output")
		}
		if !bytes.HasPrefix(enc1.Bytes(), testHeader) {
			t.Error("encrypted output does not start with test header")
		}
	})

	t.Run("invalid header", func(t *testing.T) {
		var out bytes.Buffer
		if err := e.Decrypt(nil, bytes.NewReader([]byte("NOT_VALID_HEADER_data")), &out); err == nil {
			t.Error("Decrypt() with invalid header should return error")
		}
	})

	t.Run("truncated header", func(t *testing.T) {
		var out bytes.Buffer
		if err := e.Decrypt(nil, bytes.NewReader([]byte("PW")), &out); err == nil {
			t.Error("Decrypt() with truncated data should return error")
		}
	})
}

func TestNewEncryptorFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ     string
		want    any
		wantErr bool
	}{
		{typ: "", want: &XChaChaEncryptor{}},
		{typ: "xchacha", want: &XChaChaEncryptor{}},
		{typ: "age", want: &AgeEncryptor{}},
		{typ: "test", want: &TestEncryptor{}},
		{typ: "rot13", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("type="+tt.typ, func(t *testing.T) {
			got, err := NewEncryptorFromConfig(config.EncryptionConfig{Type: tt.typ})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch tt.want.(type) {
			case *XChaChaEncryptor:
				if _, ok := got.(*XChaChaEncryptor); !ok {
					t.Errorf("got %T, want *XChaChaEncryptor", got)
				}
			case *AgeEncryptor:
				if _, ok := got.(*AgeEncryptor); !ok {
					t.Errorf("got %T, want *AgeEncryptor", got)
				}
			case *TestEncryptor:
				if _, ok := got.(*TestEncryptor); !ok {
					t.Errorf("got %T, want *TestEncryptor", got)
				}
			}
		})
	}
}
