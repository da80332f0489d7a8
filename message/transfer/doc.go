// Package transfer contains utilities related to encoding and decoding transfer
// encodings, which are named by the Content-Transfer-Encoding header. Only
// quoted-printable and base64 actually change the bytes. The identity
// encodings 7bit, 8bit, and binary leave the bytes as-is but come with
// validation of what the bytes may contain.
//
// For the sake of this module, the term "decoded" means that the content has
// been transformed from the named Content-Transfer-Encoding to the charset
// encoded form. Meanwhile, "encoded" means that the content has been
// transformed from the charset encoding to the named Content-Transfer-Encoding.
//
// The supported encodings are collected in a Registry, which is built once and
// never changes afterwards. Extensions may be added when the Registry is
// built.
package transfer
