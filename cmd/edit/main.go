package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/benvansteenbergen/console-sub000/internal/config"
	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/service"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
	"github.com/benvansteenbergen/console-sub000/pkg/editflow"

	"github.com/fatih/color"
)

// edit drives the document preview/commit flow from the terminal: ask the
// assistant for an edit, review the diff, accept or discard.
func main() {
	email := flag.String("email", "", "console account email")
	password := flag.String("password", "", "console account password")
	fileID := flag.String("file", "", "document file id")
	flag.Parse()

	if *email == "" || *password == "" || *fileID == "" {
		fmt.Fprintln(os.Stderr, "usage: edit -email <email> -password <password> -file <id>")
		os.Exit(2)
	}

	cfg := config.Load()
	cliLogger := logger.NewIsolatedLogger("logs/edit.log")
	defer cliLogger.Sync()

	client := upstream.NewClient(cfg.Upstream, cliLogger)
	authService := service.NewAuthService(client, cliLogger)
	chatService := service.NewChatService(client, cliLogger)
	editorService := service.NewEditorService(client, cliLogger)

	ctx := context.Background()

	token, err := authService.Login(ctx, &dto.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		color.Red("login failed: %v", err)
		os.Exit(1)
	}

	doc, err := editorService.Load(ctx, token, *fileID)
	if err != nil {
		color.Red("load failed: %v", err)
		os.Exit(1)
	}

	session := editflow.NewSession(*fileID, doc.Content)
	fmt.Printf("loaded %s (%d chars). Type an instruction, or 'quit'.\n", *fileID, len(doc.Content))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		instruction := strings.TrimSpace(scanner.Text())
		if instruction == "" {
			continue
		}
		if instruction == "quit" {
			return
		}

		reply, hasProposal, err := session.RequestEdit(ctx, chatService, token, instruction)
		if err != nil {
			color.Red("edit request failed: %v", err)
			continue
		}
		if reply != "" {
			fmt.Println(reply)
		}
		if !hasProposal {
			continue
		}

		printDiff(session.Diff())
		if promptAccept(scanner) {
			if err := session.Accept(ctx, editorService, token); err != nil {
				// Proposal is retained; the user can retry or discard.
				color.Red("save failed: %v", err)
				continue
			}
			color.Green("saved")
		} else {
			session.Discard()
			fmt.Println("discarded")
		}
	}
}

func printDiff(segments []editflow.Segment) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed, color.CrossedOut)

	for _, seg := range segments {
		switch seg.Op {
		case editflow.OpInsert:
			added.Print(seg.Text)
		case editflow.OpDelete:
			removed.Print(seg.Text)
		default:
			fmt.Print(seg.Text)
		}
	}
	fmt.Println()
}

func promptAccept(scanner *bufio.Scanner) bool {
	fmt.Print("accept? [y/N] ")
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
