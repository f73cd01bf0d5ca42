package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"backoffice-data/internal/domain"
)

// PostgresPatientsRepository 患者Repository实现
type PostgresPatientsRepository struct {
	db *sql.DB
}

// NewPostgresPatientsRepository 创建患者Repository
func NewPostgresPatientsRepository(db *sql.DB) *PostgresPatientsRepository {
	return &PostgresPatientsRepository{db: db}
}

// 确保实现了接口
var _ PatientsRepository = (*PostgresPatientsRepository)(nil)

// CreatePatient 登记患者
// 科室存在性检查与插入在同一事务内完成，消除检查与写入之间的竞态
func (r *PostgresPatientsRepository) CreatePatient(ctx context.Context, patient *domain.Patient) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapSQLError(err, "create patient")
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM departments WHERE id = $1)`, patient.DepartmentID,
	).Scan(&exists)
	if err != nil {
		return 0, mapSQLError(err, "create patient")
	}
	if !exists {
		return 0, domain.NewNotFound("department not found")
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO patients (name, age, disease, admitted_on, department_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		patient.Name, patient.Age, patient.Disease, patient.AdmittedOn, patient.DepartmentID,
	).Scan(&id)
	if err != nil {
		return 0, mapSQLError(err, "create patient")
	}

	if err := tx.Commit(); err != nil {
		return 0, mapSQLError(err, "create patient")
	}
	return id, nil
}

// patientSelect 患者 + 科室名投影（科室缺失时 department name 为 NULL）
const patientSelect = `
	SELECT
		p.id,
		p.name,
		p.age,
		p.disease,
		p.admitted_on,
		p.department_id,
		d.name AS department_name
	FROM patients p
	LEFT JOIN departments d ON p.department_id = d.id
`

func (r *PostgresPatientsRepository) queryPatients(ctx context.Context, op, where string, args ...any) ([]*domain.PatientWithDepartment, error) {
	query := patientSelect
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY p.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLError(err, op)
	}
	defer rows.Close()

	patients := []*domain.PatientWithDepartment{}
	for rows.Next() {
		var p domain.PatientWithDepartment
		var departmentName sql.NullString
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Age,
			&p.Disease,
			&p.AdmittedOn,
			&p.DepartmentID,
			&departmentName,
		)
		if err != nil {
			return nil, mapSQLError(err, op)
		}
		if departmentName.Valid {
			p.DepartmentName = departmentName.String
			p.HasDepartment = true
		}
		patients = append(patients, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLError(err, op)
	}

	return patients, nil
}

// ListPatients 查询全部患者
func (r *PostgresPatientsRepository) ListPatients(ctx context.Context) ([]*domain.PatientWithDepartment, error) {
	return r.queryPatients(ctx, "list patients", "")
}

// SearchByDisease 按病名子串查询
func (r *PostgresPatientsRepository) SearchByDisease(ctx context.Context, substr string) ([]*domain.PatientWithDepartment, error) {
	return r.queryPatients(ctx, "search patients by disease", "p.disease ILIKE $1", "%"+substr+"%")
}

// SearchByName 按姓名子串查询
func (r *PostgresPatientsRepository) SearchByName(ctx context.Context, substr string) ([]*domain.PatientWithDepartment, error) {
	return r.queryPatients(ctx, "search patients by name", "p.name ILIKE $1", "%"+substr+"%")
}

// UpdatePatient 部分更新
// 患者存在性、目标科室存在性、动态 SET 更新在同一事务内完成
func (r *PostgresPatientsRepository) UpdatePatient(ctx context.Context, id int64, patch domain.PatientPatch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapSQLError(err, "update patient")
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return mapSQLError(err, "update patient")
	}
	if !exists {
		return domain.NewNotFound("patient not found")
	}

	// 构建SET子句（零值字段跳过，保持原值）
	set := []string{}
	args := []any{}
	argN := 1

	if patch.Name != "" {
		set = append(set, fmt.Sprintf("name = $%d", argN))
		args = append(args, patch.Name)
		argN++
	}
	if patch.Age != 0 {
		set = append(set, fmt.Sprintf("age = $%d", argN))
		args = append(args, patch.Age)
		argN++
	}
	if patch.Disease != "" {
		set = append(set, fmt.Sprintf("disease = $%d", argN))
		args = append(args, patch.Disease)
		argN++
	}
	if patch.AdmittedOn != nil {
		set = append(set, fmt.Sprintf("admitted_on = $%d", argN))
		args = append(args, *patch.AdmittedOn)
		argN++
	}
	if patch.DepartmentID != 0 {
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM departments WHERE id = $1)`, patch.DepartmentID,
		).Scan(&exists)
		if err != nil {
			return mapSQLError(err, "update patient")
		}
		if !exists {
			return domain.NewNotFound("department not found")
		}
		set = append(set, fmt.Sprintf("department_id = $%d", argN))
		args = append(args, patch.DepartmentID)
		argN++
	}

	if len(set) == 0 {
		// 没有待应用的字段：视为成功的空更新
		return tx.Commit()
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE patients SET %s WHERE id = $%d", strings.Join(set, ", "), argN)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapSQLError(err, "update patient")
	}

	if err := tx.Commit(); err != nil {
		return mapSQLError(err, "update patient")
	}
	return nil
}

// DeletePatient 删除患者
func (r *PostgresPatientsRepository) DeletePatient(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return mapSQLError(err, "delete patient")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapSQLError(err, "delete patient")
	}
	if affected == 0 {
		return domain.NewNotFound("patient not found")
	}
	return nil
}
