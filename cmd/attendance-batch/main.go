package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"backoffice-data/internal/config"
	"backoffice-data/internal/database"
	"backoffice-data/internal/export"
	appLogger "backoffice-data/internal/logger"
	"backoffice-data/internal/repository"
	"backoffice-data/internal/service"

	_ "github.com/lib/pq"
)

const timeFormat = "2006-01-02 15:04:05"

func main() {
	// Parse command line arguments
	var addEmployee = flag.Int64("add-employee", 0, "Register an employee with this ID (use with -name, -department)")
	var name = flag.String("name", "", "Employee name for -add-employee")
	var department = flag.String("department", "", "Employee department for -add-employee")
	var checkIn = flag.Int64("check-in", 0, "Record a check-in for the employee with this ID")
	var checkOut = flag.Int64("check-out", 0, "Record a check-out for the employee with this ID")
	var list = flag.Bool("list", false, "List all attendance records")
	var incomplete = flag.Bool("incomplete", false, "List employees that are checked in but not checked out")
	var exportFile = flag.String("export", "", "Write open sessions to this .xlsx file")
	flag.Parse()

	cfg := config.Load()

	logger, err := appLogger.NewLogger(cfg.Log.Level, cfg.Log.Format, "attendance-batch")
	if err != nil {
		log.Fatalf("Cannot build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	attendance := service.NewAttendanceService(repository.NewPostgresAttendanceRepository(db), logger)
	ctx := context.Background()

	ran := false

	if *addEmployee != 0 {
		ran = true
		err := attendance.AddEmployee(ctx, service.AddEmployeeRequest{
			EmployeeID: *addEmployee,
			Name:       *name,
			Department: *department,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Employee %d added\n", *addEmployee)
		}
	}

	if *checkIn != 0 {
		ran = true
		if _, err := attendance.CheckIn(ctx, *checkIn); err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Employee %d checked in\n", *checkIn)
		}
	}

	if *checkOut != 0 {
		ran = true
		record, err := attendance.CheckOut(ctx, *checkOut)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Employee %d checked out, total hours: %.2f\n", *checkOut, *record.TotalHours)
		}
	}

	if *list {
		ran = true
		records, err := attendance.ListAttendance(ctx)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Println("Attendance records:")
			for _, rec := range records {
				out := "-"
				hours := "-"
				if rec.CheckOut != nil {
					out = rec.CheckOut.Format(timeFormat)
				}
				if rec.TotalHours != nil {
					hours = fmt.Sprintf("%.2f", *rec.TotalHours)
				}
				fmt.Printf("  [%d] employee=%d in=%s out=%s hours=%s\n",
					rec.AttendanceID, rec.EmployeeID, rec.CheckIn.Format(timeFormat), out, hours)
			}
		}
	}

	if *incomplete {
		ran = true
		sessions, err := attendance.ListOpenSessions(ctx)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Println("Open sessions (checked in, not checked out):")
			for _, s := range sessions {
				fmt.Printf("  employee=%d name=%s since=%s\n", s.EmployeeID, s.Name, s.CheckIn.Format(timeFormat))
			}
		}
	}

	if *exportFile != "" {
		ran = true
		sessions, err := attendance.ListOpenSessions(ctx)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			data, err := export.GenerateOpenSessionExport(sessions)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
			} else if err := os.WriteFile(*exportFile, data, 0o644); err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Printf("Open sessions exported to %s (%d rows)\n", *exportFile, len(sessions))
			}
		}
	}

	if !ran {
		flag.Usage()
	}
}
