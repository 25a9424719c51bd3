package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"pethealth/internal/client"
	"pethealth/internal/models"
)

var (
	version   string
	buildDate string
)

// repl runs the interactive shell loop over the pet health API.
func repl(c *client.Client, loader *client.ProfileLoader) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("petctl> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login, logout, pets, add-pet, profile <petId>, weigh <petId> <kg>, reminders, due-soon, exit")
		case "login":
			email := prompt(scanner, "Email: ")
			password := prompt(scanner, "Password: ")
			session, err := c.Login(ctx, email, password)
			if err != nil {
				printErr(err)
				continue
			}
			fmt.Printf("Logged in as %s %s\n", session.User.FirstName, session.User.LastName)
		case "logout":
			if err := c.Logout(ctx); err != nil {
				printErr(err)
				continue
			}
			fmt.Println("Logged out")
		case "pets":
			pets, err := c.ListPets(ctx)
			if err != nil {
				printErr(err)
				continue
			}
			if len(pets) == 0 {
				fmt.Println("No pets yet. Try 'add-pet'.")
				continue
			}
			for _, p := range pets {
				fmt.Printf("%3d  %-20s %s\n", p.ID, p.Name, p.Species)
			}
		case "add-pet":
			name := prompt(scanner, "Name: ")
			species := prompt(scanner, "Species (dog/cat/bird/rabbit/other): ")
			birthDate := prompt(scanner, "Birth date (YYYY-MM-DD, optional): ")
			in := client.PetInput{Name: &name, Species: &species}
			if birthDate != "" {
				in.BirthDate = &birthDate
			}
			pet, err := c.CreatePet(ctx, in)
			if err != nil {
				printErr(err)
				continue
			}
			fmt.Printf("Created pet %d: %s\n", pet.ID, pet.Name)
		case "profile":
			if len(args) < 2 {
				fmt.Println("Usage: profile <petId>")
				continue
			}
			id, err := parseUint(args[1])
			if err != nil {
				fmt.Println("Invalid pet id")
				continue
			}
			profile, err := loader.Load(ctx, id)
			if err != nil {
				printErr(err)
				continue
			}
			printProfile(profile)
		case "weigh":
			if len(args) < 3 {
				fmt.Println("Usage: weigh <petId> <kg>")
				continue
			}
			id, err := parseUint(args[1])
			if err != nil {
				fmt.Println("Invalid pet id")
				continue
			}
			kg, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				fmt.Println("Invalid weight")
				continue
			}
			logEntry, err := c.CreateWeightLog(ctx, client.WeightLogInput{
				PetID:    id,
				Date:     time.Now().Format("2006-01-02"),
				WeightKg: kg,
			})
			if err != nil {
				printErr(err)
				continue
			}
			fmt.Printf("Logged %.1f kg on %s\n", logEntry.WeightKg, logEntry.Date.Format("2006-01-02"))
		case "reminders":
			printReminders(c.ListReminders(ctx))
		case "due-soon":
			printReminders(c.ListDueSoonReminders(ctx))
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

func printErr(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Printf("Error (%d): %s\n", apiErr.Status, apiErr.Message)
		return
	}
	fmt.Println("Error:", err)
}

func printProfile(p *client.PetProfile) {
	b, _ := json.MarshalIndent(p.Pet, "", "  ")
	fmt.Println(string(b))

	if p.WeightErr != nil {
		fmt.Println("Weight history unavailable:", p.WeightErr)
	} else if latest := client.LatestWeight(p.WeightLogs); latest != nil {
		fmt.Printf("Latest weight: %.1f kg (%s)\n", latest.WeightKg, latest.Date.Format("2006-01-02"))
	}

	if p.VaccineErr != nil {
		fmt.Println("Vaccine history unavailable:", p.VaccineErr)
	} else if next := client.UpcomingVaccine(p.VaccineLogs, time.Now()); next != nil {
		fmt.Printf("Next vaccine: %s due %s\n", next.VaccineType, next.NextDueDate.Format("2006-01-02"))
	}

	if p.DietErr != nil {
		fmt.Println("Diet history unavailable:", p.DietErr)
	} else {
		for _, d := range client.RecentDiet(p.DietLogs, 3) {
			fmt.Printf("Fed: %s (%s)\n", d.Description, d.Date.Format("2006-01-02"))
		}
	}
}

func printReminders(reminders []models.Reminder, err error) {
	if err != nil {
		printErr(err)
		return
	}
	if len(reminders) == 0 {
		fmt.Println("No reminders")
		return
	}
	for _, r := range reminders {
		status := " "
		if r.Sent {
			status = "x"
		}
		fmt.Printf("[%s] %3d  %-10s due %s: %s\n",
			status, r.ID, r.Type, r.DueDate.Format("2006-01-02"), r.Message)
	}
}

func main() {
	var (
		baseURL     string
		sessionPath string
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&sessionPath, "session", "", "path to session file (default: user config dir)")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("petctl\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	store, err := client.NewSessionStore(sessionPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.Load(); err != nil {
		log.Fatal(err)
	}

	c := client.New(baseURL, store)
	repl(c, client.NewProfileLoader(c))
}
