package cli

import (
	"context"
	"fmt"
)

// Encrypt reads a message and an optional time-out and prints the text to
// publish for the selected group.
func (a *App) Encrypt(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Enter the message", a.out)
	if err != nil {
		return err
	}
	input, err := getSimpleText(a.reader, "Expire after (e.g. 24h, a Unix time, empty for never)", a.out)
	if err != nil {
		return err
	}
	timeOut, err := parseTimeOut(input)
	if err != nil {
		return a.fail(ctx, "encrypt", err)
	}

	published, err := a.messages.Encrypt(ctx, text, timeOut, a.dataKey)
	if err != nil {
		return a.fail(ctx, "encrypt", err)
	}
	fmt.Fprintln(a.out, published)
	return nil
}

// Decrypt reads one published text and prints its message.
func (a *App) Decrypt(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Paste the message", a.out)
	if err != nil {
		return err
	}
	tok, err := a.messages.Decrypt(ctx, text, a.dataKey)
	if err != nil {
		return a.fail(ctx, "decrypt", err)
	}
	fmt.Fprintln(a.out, formatMessage(tok))
	return nil
}

// DecryptAll reads published texts, one per line, and prints every message
// that could be decrypted. The rest are skipped silently.
func (a *App) DecryptAll(ctx context.Context) error {
	texts, err := GetLines(a.reader, "Paste the messages, one per line", a.out)
	if err != nil {
		return err
	}
	tokens, err := a.messages.DecryptAll(ctx, texts, a.dataKey)
	if err != nil {
		return a.fail(ctx, "decrypt all", err)
	}
	for _, t := range tokens {
		fmt.Fprintln(a.out, formatMessage(t))
	}
	fmt.Fprintf(a.out, "%d of %d message(s) decrypted.\n", len(tokens), len(texts))
	return nil
}
