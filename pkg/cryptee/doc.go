/*
Package cryptee provides reversible, key-dependent obfuscation of text and binary data, framed as Base64 or hex for safe transport as text.

Note that this is NOT encryption.
The transform is a small, deterministic stream cipher without a nonce or authentication, so the same key and input always produce the same output.
It's suitable for keeping values like identifiers or tokens from casual observation, and for interoperating with systems that already use this format.
It is NOT recommended for security critical use.

# How it works:

A key of at least 6 characters, with at least one alpha-numeric and one punctuation character (from Punctuation), is validated once in New.
Every operation then schedules a fresh 256-entry table from the key and walks it to produce one keystream byte per input byte, which is XORed with the input.
Since a fresh table is scheduled each time, a Cipher holds no running state and may be shared between goroutines.
Applying the transform twice with the same key returns the original input, so Encode and Decode differ only in when the text framing is applied.

# Compatibility:

Key scheduling reads key bytes starting from the second byte, wrapping early, and never schedules the last table slot.
These are part of the format and are reproduced exactly.
Use LegacySchedule to interoperate with deployments that also left the last table slot unseeded.

# General guidelines:
  - Longer keys are better. GenerateKey produces a suitable 128 character key by default.
  - The same Mode, translate flag, and schedule variant must be used to reverse the process.
  - Use the translate flag with Base64 when output will appear in URLs or file names.
  - Use NewReader and NewWriter for data that shouldn't be held in memory all at once.
*/
package cryptee
