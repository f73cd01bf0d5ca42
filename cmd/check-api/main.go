package main

import (
	"flag"
	"fmt"
	"log"

	"backoffice-data/internal/client"
	appLogger "backoffice-data/internal/logger"
)

// 针对运行中的 hospital-api 跑一遍端到端冒烟：
// 登录 -> 建科室 -> 收患者 -> 查询/搜索 -> 部分更新 -> 删除
func main() {
	var baseURL = flag.String("url", "http://localhost:8080", "hospital-api base URL")
	var username = flag.String("user", "admin", "Login username")
	var password = flag.String("password", "1234", "Login password")
	var keep = flag.Bool("keep", false, "Keep the created patient instead of deleting it")
	flag.Parse()

	logger, err := appLogger.NewLoggerWithDefaults()
	if err != nil {
		log.Fatalf("Cannot build logger: %v", err)
	}
	defer logger.Sync()

	api := client.NewHospitalClient(*baseURL, logger)

	if _, err := api.Login(*username, *password); err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	fmt.Println("OK login")

	deptID, err := api.AddDepartment("Cardiology", "Dr. Smith")
	if err != nil {
		// 科室可能已存在（重复跑脚本），继续用已有的
		fmt.Printf("AddDepartment: %v\n", err)
		depts, err := api.ListDepartments()
		if err != nil {
			log.Fatalf("ListDepartments failed: %v", err)
		}
		for _, d := range depts {
			if d.Name == "Cardiology" {
				deptID = d.ID
			}
		}
		if deptID == 0 {
			log.Fatalf("Department Cardiology not found after conflict")
		}
	}
	fmt.Printf("OK department (id=%d)\n", deptID)

	patientID, err := api.AddPatient("Jane Doe", 34, "Flu", "2024-01-15", deptID)
	if err != nil {
		log.Fatalf("AddPatient failed: %v", err)
	}
	fmt.Printf("OK patient (id=%d)\n", patientID)

	patients, err := api.ListPatients()
	if err != nil {
		log.Fatalf("ListPatients failed: %v", err)
	}
	fmt.Printf("OK list patients (%d rows)\n", len(patients))

	byName, err := api.SearchPatientsByName("Jane")
	if err != nil {
		log.Fatalf("SearchPatientsByName failed: %v", err)
	}
	fmt.Printf("OK search by name (%d rows)\n", len(byName))

	byDisease, err := api.PatientsByDisease("Flu")
	if err != nil {
		log.Fatalf("PatientsByDisease failed: %v", err)
	}
	fmt.Printf("OK search by disease (%d rows)\n", len(byDisease))

	if err := api.UpdatePatient(patientID, map[string]any{"disease": "Recovered"}); err != nil {
		log.Fatalf("UpdatePatient failed: %v", err)
	}
	fmt.Println("OK update patient")

	if !*keep {
		if err := api.DeletePatient(patientID); err != nil {
			log.Fatalf("DeletePatient failed: %v", err)
		}
		fmt.Println("OK delete patient")
	}

	fmt.Println("All checks passed")
}
